package surface

// FormatARGB8888 is the wl_shm pixel format the painter produces: 32-bit
// pixels stored little-endian, so bytes land in B,G,R,A order.
const FormatARGB8888 uint32 = 0

// EventKind discriminates session events.
type EventKind int

const (
	EventNone EventKind = iota
	// EventConfigure carries new surface dimensions from the compositor.
	// Zero dimensions mean the compositor leaves the size to the client.
	EventConfigure
	// EventClosed means the compositor dismissed the surface; the session
	// is unusable afterwards.
	EventClosed
	// EventError carries a fatal protocol or transport error.
	EventError
)

// Event is one inbound notification from the compositor session.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
	Err    error
}

// Session is the slice of a compositor connection the surface needs:
// sharing buffer memory and presenting frames. Events delivers configure,
// close, and error notifications; the channel closes when the session ends.
type Session interface {
	CreatePool(fd int, size int32) (Pool, error)
	Attach(Buffer)
	DamageFull(width, height int32)
	Commit() error
	Events() <-chan Event
}

// Pool is a shared-memory pool registered with the compositor. Buffers are
// carved out of it; Resize may only grow.
type Pool interface {
	CreateBuffer(offset, width, height, stride int32, format uint32) (Buffer, error)
	Resize(size int32) error
	Destroy()
}

// Buffer is one presentable region of a pool.
type Buffer interface {
	Destroy()
}
