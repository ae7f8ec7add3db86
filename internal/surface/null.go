package surface

// NullSession is an in-memory Session that records every call, for tests
// and for driving the surface without a compositor.
type NullSession struct {
	Pools    []*NullPool
	Attached []Buffer
	Damaged  [][2]int32
	Commits  int
	NextErr  error // returned by the next Commit or CreatePool, then cleared

	events chan Event
}

func NewNullSession() *NullSession {
	return &NullSession{events: make(chan Event, 16)}
}

func (s *NullSession) CreatePool(fd int, size int32) (Pool, error) {
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	p := &NullPool{Fd: fd, Size: size}
	s.Pools = append(s.Pools, p)
	return p, nil
}

func (s *NullSession) Attach(b Buffer) {
	s.Attached = append(s.Attached, b)
}

func (s *NullSession) DamageFull(width, height int32) {
	s.Damaged = append(s.Damaged, [2]int32{width, height})
}

func (s *NullSession) Commit() error {
	if err := s.takeErr(); err != nil {
		return err
	}
	s.Commits++
	return nil
}

func (s *NullSession) Events() <-chan Event { return s.events }

// PostEvent injects an event as if the compositor sent it. Drops the event
// when the channel is full rather than blocking the test.
func (s *NullSession) PostEvent(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// End closes the event channel like a finished session.
func (s *NullSession) End() { close(s.events) }

func (s *NullSession) takeErr() error {
	err := s.NextErr
	s.NextErr = nil
	return err
}

// NullPool records buffer and resize activity.
type NullPool struct {
	Fd        int
	Size      int32
	Resizes   []int32
	Buffers   []*NullBuffer
	Destroyed bool
}

func (p *NullPool) CreateBuffer(offset, width, height, stride int32, format uint32) (Buffer, error) {
	b := &NullBuffer{Offset: offset, Width: width, Height: height, Stride: stride, Format: format}
	p.Buffers = append(p.Buffers, b)
	return b, nil
}

func (p *NullPool) Resize(size int32) error {
	p.Resizes = append(p.Resizes, size)
	p.Size = size
	return nil
}

func (p *NullPool) Destroy() { p.Destroyed = true }

// NullBuffer records the geometry it was created with.
type NullBuffer struct {
	Offset    int32
	Width     int32
	Height    int32
	Stride    int32
	Format    uint32
	Destroyed bool
}

func (b *NullBuffer) Destroy() { b.Destroyed = true }
