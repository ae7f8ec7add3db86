// Package app drives the daemon: it owns the walk state and reacts to
// compositor events and walk ticks.
package app

import (
	"context"
	"time"

	"github.com/BjarneSeger/walk-bg/internal/config"
	"github.com/BjarneSeger/walk-bg/internal/log"
	"github.com/BjarneSeger/walk-bg/internal/render"
	"github.com/BjarneSeger/walk-bg/internal/surface"
	"github.com/BjarneSeger/walk-bg/internal/walk"
)

// App holds one grid, one walk position and one surface. Everything runs
// on the caller's goroutine; the session feeds events in from its reader.
type App struct {
	cfg     *config.Config
	log     *log.Logger
	session surface.Session
	surf    *surface.Surface
	opts    render.Options

	grid    *walk.Grid
	stepper *walk.Stepper
	pos     walk.Point
	stats   walk.Stats
}

// New wires an App over a connected session.
func New(cfg *config.Config, logger *log.Logger, session surface.Session) (*App, error) {
	surf, err := surface.New(session)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		log:     logger,
		session: session,
		surf:    surf,
		opts: render.Options{
			Spacing:         cfg.PixelsPerPoint,
			DotRadius:       cfg.DotRadius,
			Bg:              cfg.BgColor,
			Fg:              cfg.FgColor,
			Active:          cfg.ActiveColor,
			DrawEdges:       cfg.DrawEdges,
			HighlightActive: cfg.HighlightActive,
		},
		grid:    walk.NewGrid(1, 1),
		stepper: walk.NewStepper(time.Now().UnixNano()),
	}, nil
}

// Run drives the event and tick loop until the context is canceled, the
// compositor dismisses the surface, or a protocol error comes back. Walk
// ticks before the first configure are skipped.
func (a *App) Run(ctx context.Context) error {
	defer a.surf.Close()
	defer a.logStats()

	ticker := time.NewTicker(a.cfg.WalkInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Infof("shutting down")
			return nil
		case ev, ok := <-a.session.Events():
			if !ok {
				return nil
			}
			switch ev.Kind {
			case surface.EventConfigure:
				if err := a.configure(ev.Width, ev.Height); err != nil {
					return err
				}
			case surface.EventClosed:
				a.log.Infof("surface closed by compositor")
				return nil
			case surface.EventError:
				return ev.Err
			}
		case <-ticker.C:
			if a.surf.State() == surface.StateUnconfigured {
				continue
			}
			if err := a.step(); err != nil {
				return err
			}
		}
	}
}

// configure resizes everything the output dimensions feed into and presents
// a first frame.
func (a *App) configure(width, height int) error {
	w, h, err := a.surf.Configure(width, height)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		a.log.Warnf("compositor left the surface unsized, using %dx%d", w, h)
	}
	a.log.Infof("display size: %dx%d", w, h)

	a.grid.Resize(w/a.opts.Spacing+1, h/a.opts.Spacing+1)
	a.pos = a.grid.Center()
	a.stats.Reset()
	a.log.Infof("grid initialized: %dx%d (center %d,%d)",
		a.grid.Width(), a.grid.Height(), a.pos.X, a.pos.Y)

	return a.redraw()
}

// step advances the walk one cell, marks the visit, and repaints.
func (a *App) step() error {
	x, y := a.stepper.Step(a.pos.X, a.pos.Y, a.grid.Width(), a.grid.Height())
	a.pos = walk.Point{X: x, Y: y}
	a.stats.Record(a.grid, x, y)
	a.grid.Visit(x, y)
	return a.redraw()
}

// redraw paints the whole frame into the surface buffer and submits it.
func (a *App) redraw() error {
	buf, err := a.surf.AcquireDrawable()
	if err != nil {
		return err
	}
	w, h := a.surf.Size()
	render.Paint(buf, w, h, a.opts, a.grid, a.pos)
	return a.surf.Submit()
}

func (a *App) logStats() {
	a.log.Infof("walk ended after %d steps, %d revisits, %.1f%% coverage",
		a.stats.Steps, a.stats.Revisits, 100*walk.Coverage(a.grid))
}
