package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BjarneSeger/walk-bg/internal/app"
	"github.com/BjarneSeger/walk-bg/internal/config"
	"github.com/BjarneSeger/walk-bg/internal/export"
	"github.com/BjarneSeger/walk-bg/internal/log"
	"github.com/BjarneSeger/walk-bg/internal/render"
	"github.com/BjarneSeger/walk-bg/internal/tui"
	"github.com/BjarneSeger/walk-bg/internal/walk"
	"github.com/BjarneSeger/walk-bg/internal/wayland"
)

var (
	configFile string
	logLevel   string

	prevWidth  int
	prevHeight int
	prevSteps  int
	prevSeed   int64
	prevOut    string
	prevGIF    bool
	frameEvery int
	frameDelay int

	liveFPS  int
	liveSeed int64

	showDefaults bool
	writeConfig  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walk-bg",
		Short: "Animated random-walk wallpaper for layer-shell compositors",
		Long: `walk-bg renders a dot grid onto the compositor's background layer and
walks a token across it, brightening each cell it visits.`,
		RunE: runDaemon,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/walk-bg/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, error, none")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a walk offline to PNG or animated GIF",
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&prevWidth, "width", 800, "frame width in pixels")
	previewCmd.Flags().IntVar(&prevHeight, "height", 600, "frame height in pixels")
	previewCmd.Flags().IntVar(&prevSteps, "steps", 500, "walk steps to simulate")
	previewCmd.Flags().Int64Var(&prevSeed, "seed", time.Now().UnixNano(), "walk seed")
	previewCmd.Flags().StringVar(&prevOut, "out", "walk.png", "output file")
	previewCmd.Flags().BoolVar(&prevGIF, "gif", false, "write an animated gif instead of a png")
	previewCmd.Flags().IntVar(&frameEvery, "frame-every", 10, "steps per gif frame")
	previewCmd.Flags().IntVar(&frameDelay, "delay", 8, "gif frame delay in 1/100s")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Preview the walk in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&liveFPS, "fps", 30, "redraw rate cap")
	liveCmd.Flags().Int64Var(&liveSeed, "seed", time.Now().UnixNano(), "walk seed")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE:  runConfig,
	}
	configCmd.Flags().BoolVar(&showDefaults, "defaults", false, "ignore any config file and show built-in defaults")
	configCmd.Flags().BoolVar(&writeConfig, "write", false, "write the shown configuration to the default path")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List built-in color themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range config.Themes {
				fmt.Printf("%-10s bg %s  fg %s  active %s\n",
					t.Name, config.HexRGB(t.Bg), config.HexRGB(t.Fg), config.HexRGB(t.Active))
			}
		},
	}

	rootCmd.AddCommand(previewCmd, liveCmd, configCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, log.LevelFromString(logLevel))
}

// loadConfig resolves the config file. A missing or unusable file is not
// fatal: the daemon starts with defaults and says so.
func loadConfig(logger *log.Logger) *config.Config {
	path := configFile
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Infof("no config directory (%v), using defaults", err)
			return config.DefaultConfig()
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Infof("config %s not loaded (%v), using defaults", path, err)
		return config.DefaultConfig()
	}
	logger.Debugf("loaded config from %s", path)
	return cfg
}

func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		Spacing:         cfg.PixelsPerPoint,
		DotRadius:       cfg.DotRadius,
		Bg:              cfg.BgColor,
		Fg:              cfg.FgColor,
		Active:          cfg.ActiveColor,
		DrawEdges:       cfg.DrawEdges,
		HighlightActive: cfg.HighlightActive,
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)

	session, err := wayland.Connect(logger)
	if err != nil {
		return err
	}
	defer session.Close()

	a, err := app.New(cfg, logger, session)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("presenting on the background layer (%g walks/min)", cfg.WalksPerMinute)
	return a.Run(ctx)
}

func runPreview(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)
	opts := renderOptions(cfg)

	gw := prevWidth/cfg.PixelsPerPoint + 1
	gh := prevHeight/cfg.PixelsPerPoint + 1
	grid := walk.NewGrid(gw, gh)
	stepper := walk.NewStepper(prevSeed)
	pos := grid.Center()

	buf := make([]byte, prevWidth*4*prevHeight)
	var frames [][]byte

	for i := 0; i < prevSteps; i++ {
		x, y := stepper.Step(pos.X, pos.Y, gw, gh)
		pos = walk.Point{X: x, Y: y}
		grid.Visit(x, y)
		if prevGIF && (i%frameEvery == 0 || i == prevSteps-1) {
			render.Paint(buf, prevWidth, prevHeight, opts, grid, pos)
			frame := make([]byte, len(buf))
			copy(frame, buf)
			frames = append(frames, frame)
		}
	}

	f, err := os.Create(prevOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if prevGIF {
		if err := export.WriteGIF(f, frames, prevWidth, prevHeight, frameDelay); err != nil {
			return err
		}
	} else {
		render.Paint(buf, prevWidth, prevHeight, opts, grid, pos)
		if err := export.WritePNG(f, buf, prevWidth, prevHeight); err != nil {
			return err
		}
	}

	logger.Infof("wrote %s: %d steps, %.1f%% coverage", prevOut, prevSteps, 100*walk.Coverage(grid))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)
	return tui.Run(cfg, liveFPS, liveSeed)
}

func runConfig(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := loadConfig(logger)
	if showDefaults {
		cfg = config.DefaultConfig()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if writeConfig {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		logger.Infof("wrote %s", path)
	}
	return nil
}
