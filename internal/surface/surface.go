package surface

import "fmt"

// State tracks where a Surface is in its configure/present lifecycle.
type State int

const (
	// StateUnconfigured means no dimensions have been negotiated yet;
	// drawables cannot be handed out.
	StateUnconfigured State = iota
	// StateConfigured means the store is sized but nothing has been
	// presented since the last configure.
	StateConfigured
	// StatePresenting means at least one buffer has been committed at the
	// current dimensions.
	StatePresenting
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StatePresenting:
		return "presenting"
	default:
		return "unknown"
	}
}

const (
	defaultWidth  = 1920
	defaultHeight = 1080
	bytesPerPixel = 4
)

// Surface owns the backing store and walks the shm pool/buffer protocol
// objects through a Session. The pool is created once and only grows;
// the buffer is recreated only when the dimensions change.
type Surface struct {
	session Session
	store   *BackingStore

	state    State
	width    int
	height   int
	acquired bool

	pool     Pool
	poolSize int32
	buffer   Buffer
	bufW     int
	bufH     int
}

// New creates an unconfigured Surface over a connected session.
func New(session Session) (*Surface, error) {
	store, err := NewBackingStore()
	if err != nil {
		return nil, err
	}
	return &Surface{session: session, store: store}, nil
}

// Configure applies dimensions negotiated with the compositor and returns
// the effective size. A zero dimension falls back to 1920x1080. Any
// configure invalidates the acquired drawable, and a dimension change
// additionally retires the current buffer.
func (s *Surface) Configure(width, height int) (int, int, error) {
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	if err := s.store.Resize(width * bytesPerPixel * height); err != nil {
		return 0, 0, err
	}
	if s.buffer != nil && (width != s.bufW || height != s.bufH) {
		s.buffer.Destroy()
		s.buffer = nil
	}
	s.width = width
	s.height = height
	s.acquired = false
	s.state = StateConfigured
	return width, height, nil
}

// Size returns the configured dimensions.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Stride returns the byte width of one pixel row.
func (s *Surface) Stride() int { return s.width * bytesPerPixel }

func (s *Surface) State() State { return s.state }

// AcquireDrawable returns the writable pixel region for the current
// dimensions. The mapping is established lazily and reused across frames;
// after a configure the region reads as zeroes.
func (s *Surface) AcquireDrawable() ([]byte, error) {
	if s.state == StateUnconfigured {
		return nil, ErrNotConfigured
	}
	buf, err := s.store.Map()
	if err != nil {
		return nil, err
	}
	s.acquired = true
	return buf, nil
}

// Submit presents the painted drawable: it lazily creates (or grows) the
// shm pool, lazily creates the buffer for the current dimensions, then
// attaches, damages the full surface, and commits.
func (s *Surface) Submit() error {
	if !s.acquired {
		return ErrNoDrawable
	}
	alloc := int32(s.store.Alloc())
	if s.pool == nil {
		pool, err := s.session.CreatePool(s.store.Fd(), alloc)
		if err != nil {
			return fmt.Errorf("surface: create pool: %w", err)
		}
		s.pool = pool
		s.poolSize = alloc
	} else if alloc > s.poolSize {
		if err := s.pool.Resize(alloc); err != nil {
			return fmt.Errorf("surface: grow pool: %w", err)
		}
		s.poolSize = alloc
	}
	if s.buffer == nil {
		buf, err := s.pool.CreateBuffer(0, int32(s.width), int32(s.height), int32(s.Stride()), FormatARGB8888)
		if err != nil {
			return fmt.Errorf("surface: create buffer: %w", err)
		}
		s.buffer = buf
		s.bufW = s.width
		s.bufH = s.height
	}
	s.session.Attach(s.buffer)
	s.session.DamageFull(int32(s.width), int32(s.height))
	if err := s.session.Commit(); err != nil {
		return fmt.Errorf("surface: commit: %w", err)
	}
	s.state = StatePresenting
	return nil
}

// Close retires the protocol objects and releases the backing store.
func (s *Surface) Close() error {
	if s.buffer != nil {
		s.buffer.Destroy()
		s.buffer = nil
	}
	if s.pool != nil {
		s.pool.Destroy()
		s.pool = nil
	}
	return s.store.Close()
}
