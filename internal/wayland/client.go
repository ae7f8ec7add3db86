package wayland

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/BjarneSeger/walk-bg/internal/log"
	"github.com/BjarneSeger/walk-bg/internal/surface"
)

// Object ids and opcodes for the slice of the protocol this client speaks:
// the core interfaces plus the wlr layer-shell extension.
const (
	displayID uint32 = 1

	opDisplaySync        uint16 = 0
	opDisplayGetRegistry uint16 = 1
	evDisplayError       uint16 = 0
	evDisplayDeleteID    uint16 = 1

	opRegistryBind   uint16 = 0
	evRegistryGlobal uint16 = 0

	evCallbackDone uint16 = 0

	opCompositorCreateSurface uint16 = 0

	opShmCreatePool uint16 = 0
	evShmFormat     uint16 = 0

	opPoolCreateBuffer uint16 = 0
	opPoolDestroy      uint16 = 1
	opPoolResize       uint16 = 2

	opBufferDestroy uint16 = 0
	evBufferRelease uint16 = 0

	opSurfaceAttach       uint16 = 1
	opSurfaceDamage       uint16 = 2
	opSurfaceCommit       uint16 = 6
	opSurfaceDamageBuffer uint16 = 9

	opLayerShellGetLayerSurface uint16 = 0

	opLayerSetSize             uint16 = 0
	opLayerSetAnchor           uint16 = 1
	opLayerSetExclusiveZone    uint16 = 2
	opLayerSetKeyboardInteract uint16 = 4
	opLayerAckConfigure        uint16 = 6
	evLayerConfigure           uint16 = 0
	evLayerClosed              uint16 = 1
)

const (
	layerBackground = 0
	anchorAll       = 1 | 2 | 4 | 8 // top, bottom, left, right
	namespace       = "walk_bg"
)

// Client is a Wayland connection presenting one background layer surface.
// It implements surface.Session: requests go out on the caller's goroutine,
// events come back through a reader goroutine and the Events channel.
type Client struct {
	conn *net.UnixConn
	log  *log.Logger

	mu       sync.Mutex // serializes writes, id allocation and error state
	nextID   uint32
	writeErr error
	closed   bool

	compositor        uint32
	compositorVersion uint32
	shm               uint32
	layerShell        uint32
	wlSurface         uint32
	layerSurface      uint32

	events chan surface.Event
}

// SocketPath resolves the compositor socket from $WAYLAND_DISPLAY (default
// wayland-0), relative names live under $XDG_RUNTIME_DIR.
func SocketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}
	if filepath.IsAbs(display) {
		return display, nil
	}
	runDir := os.Getenv("XDG_RUNTIME_DIR")
	if runDir == "" {
		return "", errors.New("wayland: XDG_RUNTIME_DIR not set")
	}
	return filepath.Join(runDir, display), nil
}

// Connect dials the compositor, binds the globals it needs, and sets up a
// layer surface on the background layer covering the whole output. The
// first configure event arrives on Events once the compositor has sized
// the surface.
func Connect(logger *log.Logger) (*Client, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("wayland: connect %s: %w", path, err)
	}
	logger.Debugf("connected to %s", path)

	c := &Client{
		conn:   conn,
		log:    logger,
		nextID: displayID,
		events: make(chan surface.Event, 16),
	}
	if err := c.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	go c.readLoop()
	return c, nil
}

type global struct {
	name    uint32
	version uint32
}

func (c *Client) setup() error {
	registry := c.allocID()
	reg := newRequest(displayID, opDisplayGetRegistry)
	reg.putUint(registry)
	if err := c.write(reg); err != nil {
		return err
	}

	globals := make(map[string]global)
	err := c.roundtrip(func(m *message) {
		if m.Object == registry && m.Opcode == evRegistryGlobal {
			name := m.nextUint()
			iface := m.nextString()
			version := m.nextUint()
			globals[iface] = global{name: name, version: version}
		}
	})
	if err != nil {
		return err
	}
	c.log.Debugf("registry listed %d globals", len(globals))

	c.compositor, c.compositorVersion, err = c.bind(registry, globals, "wl_compositor", 4)
	if err != nil {
		return err
	}
	c.shm, _, err = c.bind(registry, globals, "wl_shm", 1)
	if err != nil {
		return err
	}
	c.layerShell, _, err = c.bind(registry, globals, "zwlr_layer_shell_v1", 1)
	if err != nil {
		return err
	}

	c.wlSurface = c.allocID()
	r := newRequest(c.compositor, opCompositorCreateSurface)
	r.putUint(c.wlSurface)
	if err := c.write(r); err != nil {
		return err
	}

	c.layerSurface = c.allocID()
	r = newRequest(c.layerShell, opLayerShellGetLayerSurface)
	r.putUint(c.layerSurface)
	r.putUint(c.wlSurface)
	r.putUint(0) // output: let the compositor choose
	r.putUint(layerBackground)
	r.putString(namespace)
	if err := c.write(r); err != nil {
		return err
	}

	r = newRequest(c.layerSurface, opLayerSetAnchor)
	r.putUint(anchorAll)
	if err := c.write(r); err != nil {
		return err
	}
	r = newRequest(c.layerSurface, opLayerSetExclusiveZone)
	r.putInt(-1) // extend under other surfaces' exclusive zones
	if err := c.write(r); err != nil {
		return err
	}
	r = newRequest(c.layerSurface, opLayerSetKeyboardInteract)
	r.putUint(0)
	if err := c.write(r); err != nil {
		return err
	}
	// bare commit so the compositor answers with the first configure
	return c.write(newRequest(c.wlSurface, opSurfaceCommit))
}

// bind allocates an id for a required global and binds it, capping the
// version at what this client implements.
func (c *Client) bind(registry uint32, globals map[string]global, iface string, maxVersion uint32) (uint32, uint32, error) {
	g, ok := globals[iface]
	if !ok {
		return 0, 0, fmt.Errorf("wayland: compositor does not advertise %s", iface)
	}
	version := g.version
	if version > maxVersion {
		version = maxVersion
	}
	id := c.allocID()
	r := newRequest(registry, opRegistryBind)
	r.putUint(g.name)
	r.putString(iface)
	r.putUint(version)
	r.putUint(id)
	if err := c.write(r); err != nil {
		return 0, 0, err
	}
	c.log.Debugf("bound %s v%d as id %d", iface, version, id)
	return id, version, nil
}

// roundtrip issues a wl_display.sync and reads inline until its callback
// fires, handing every other message to handle.
func (c *Client) roundtrip(handle func(*message)) error {
	callback := c.allocID()
	r := newRequest(displayID, opDisplaySync)
	r.putUint(callback)
	if err := c.write(r); err != nil {
		return err
	}
	for {
		m, err := c.readMessage()
		if err != nil {
			return err
		}
		switch {
		case m.Object == callback && m.Opcode == evCallbackDone:
			return nil
		case m.Object == displayID && m.Opcode == evDisplayError:
			return c.protocolError(m)
		default:
			handle(m)
		}
	}
}

func (c *Client) protocolError(m *message) error {
	object := m.nextUint()
	code := m.nextUint()
	text := m.nextString()
	return fmt.Errorf("wayland: protocol error on object %d: %s (code %d)", object, text, code)
}

// readLoop owns the socket's read side after setup. It acks configures
// itself and forwards the digested events. The channel is closed when the
// loop ends, which the consumer treats as end of session.
func (c *Client) readLoop() {
	defer close(c.events)
	for {
		m, err := c.readMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				c.events <- surface.Event{Kind: surface.EventError, Err: fmt.Errorf("wayland: read: %w", err)}
			}
			return
		}
		switch {
		case m.Object == c.layerSurface && m.Opcode == evLayerConfigure:
			serial := m.nextUint()
			width := m.nextUint()
			height := m.nextUint()
			ack := newRequest(c.layerSurface, opLayerAckConfigure)
			ack.putUint(serial)
			if err := c.write(ack); err != nil {
				c.events <- surface.Event{Kind: surface.EventError, Err: err}
				return
			}
			c.log.Debugf("configure serial=%d %dx%d", serial, width, height)
			c.events <- surface.Event{Kind: surface.EventConfigure, Width: int(width), Height: int(height)}
		case m.Object == c.layerSurface && m.Opcode == evLayerClosed:
			c.events <- surface.Event{Kind: surface.EventClosed}
			return
		case m.Object == displayID && m.Opcode == evDisplayError:
			c.events <- surface.Event{Kind: surface.EventError, Err: c.protocolError(m)}
			return
		case m.Object == displayID && m.Opcode == evDisplayDeleteID:
			// id retirement; ids are never reused here
		case m.Object == c.shm && m.Opcode == evShmFormat:
			// format advertisements; ARGB8888 support is mandatory
		default:
			c.log.Debugf("ignoring event: object=%d opcode=%d", m.Object, m.Opcode)
		}
	}
}

func (c *Client) readMessage() (*message, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(c.conn, hdr[:]); err != nil {
		return nil, err
	}
	h := parseHeader(hdr[:])
	if h.Size < headerSize {
		return nil, fmt.Errorf("wayland: malformed header, size %d", h.Size)
	}
	body := make([]byte, int(h.Size)-headerSize)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return nil, err
	}
	return &message{header: h, body: body}, nil
}

func (c *Client) allocID() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return c.nextID
}

// write serializes and sends one request, carrying file descriptors as
// ancillary data. The first write failure sticks so a later Commit
// surfaces it.
func (c *Client) write(r *request) error {
	buf, err := r.wire()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	if len(r.fds) > 0 {
		_, _, err = c.conn.WriteMsgUnix(buf, unix.UnixRights(r.fds...), nil)
	} else {
		_, err = c.conn.Write(buf)
	}
	if err != nil {
		c.writeErr = fmt.Errorf("wayland: write: %w", err)
		return c.writeErr
	}
	return nil
}

// Events implements surface.Session.
func (c *Client) Events() <-chan surface.Event { return c.events }

// CreatePool implements surface.Session by sharing fd with the compositor
// as a wl_shm pool.
func (c *Client) CreatePool(fd int, size int32) (surface.Pool, error) {
	id := c.allocID()
	r := newRequest(c.shm, opShmCreatePool)
	r.putUint(id)
	r.putInt(size)
	r.putFd(fd)
	if err := c.write(r); err != nil {
		return nil, err
	}
	return &shmPool{client: c, id: id}, nil
}

// Attach implements surface.Session. The buffer must come from one of this
// client's pools.
func (c *Client) Attach(b surface.Buffer) {
	buf, ok := b.(*shmBuffer)
	if !ok {
		return
	}
	r := newRequest(c.wlSurface, opSurfaceAttach)
	r.putUint(buf.id)
	r.putInt(0)
	r.putInt(0)
	c.write(r)
}

// DamageFull implements surface.Session, marking the whole surface stale.
func (c *Client) DamageFull(width, height int32) {
	// damage_buffer needs wl_surface v4; fall back to surface coordinates
	// on ancient compositors (identical here: no scale or transform is set)
	op := opSurfaceDamageBuffer
	if c.compositorVersion < 4 {
		op = opSurfaceDamage
	}
	r := newRequest(c.wlSurface, op)
	r.putInt(0)
	r.putInt(0)
	r.putInt(width)
	r.putInt(height)
	c.write(r)
}

// Commit implements surface.Session.
func (c *Client) Commit() error {
	return c.write(newRequest(c.wlSurface, opSurfaceCommit))
}

// Close tears down the connection. The reader drains out silently.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}

// shmPool is a wl_shm_pool handle.
type shmPool struct {
	client *Client
	id     uint32
}

func (p *shmPool) CreateBuffer(offset, width, height, stride int32, format uint32) (surface.Buffer, error) {
	id := p.client.allocID()
	r := newRequest(p.id, opPoolCreateBuffer)
	r.putUint(id)
	r.putInt(offset)
	r.putInt(width)
	r.putInt(height)
	r.putInt(stride)
	r.putUint(format)
	if err := p.client.write(r); err != nil {
		return nil, err
	}
	return &shmBuffer{client: p.client, id: id}, nil
}

func (p *shmPool) Resize(size int32) error {
	r := newRequest(p.id, opPoolResize)
	r.putInt(size)
	return p.client.write(r)
}

func (p *shmPool) Destroy() {
	p.client.write(newRequest(p.id, opPoolDestroy))
}

// shmBuffer is a wl_buffer handle.
type shmBuffer struct {
	client *Client
	id     uint32
}

func (b *shmBuffer) Destroy() {
	b.client.write(newRequest(b.id, opBufferDestroy))
}
