package wayland

import (
	"encoding/binary"
	"fmt"
)

// Every message starts with an 8-byte header: the object id, then one word
// holding the size in the high 16 bits and the opcode in the low 16. All
// words are little-endian. Strings carry a 32-bit length that includes the
// terminating NUL, then the bytes padded out to a word boundary. File
// descriptors never appear in the body; they ride as SCM_RIGHTS ancillary
// data on the socket.

const headerSize = 8

type header struct {
	Object uint32
	Opcode uint16
	Size   uint16
}

func parseHeader(b []byte) header {
	word := binary.LittleEndian.Uint32(b[4:8])
	return header{
		Object: binary.LittleEndian.Uint32(b[0:4]),
		Opcode: uint16(word & 0xFFFF),
		Size:   uint16(word >> 16),
	}
}

// request assembles one outgoing message.
type request struct {
	object uint32
	opcode uint16
	body   []byte
	fds    []int
}

func newRequest(object uint32, opcode uint16) *request {
	return &request{object: object, opcode: opcode}
}

func (r *request) putUint(v uint32) {
	var w [4]byte
	binary.LittleEndian.PutUint32(w[:], v)
	r.body = append(r.body, w[:]...)
}

func (r *request) putInt(v int32) {
	r.putUint(uint32(v))
}

// putString appends a NUL-terminated string padded to a word boundary.
func (r *request) putString(s string) {
	r.putUint(uint32(len(s) + 1))
	r.body = append(r.body, s...)
	r.body = append(r.body, 0)
	for len(r.body)%4 != 0 {
		r.body = append(r.body, 0)
	}
}

func (r *request) putFd(fd int) {
	r.fds = append(r.fds, fd)
}

// wire serializes the message with the final size patched into the header.
func (r *request) wire() ([]byte, error) {
	size := headerSize + len(r.body)
	if size > 0xFFFF {
		return nil, fmt.Errorf("wayland: request body exceeds %d bytes", 0xFFFF-headerSize)
	}
	buf := make([]byte, headerSize, size)
	binary.LittleEndian.PutUint32(buf[0:4], r.object)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(size)<<16|uint32(r.opcode))
	return append(buf, r.body...), nil
}

// message is one decoded inbound event. The next* readers consume the body
// in argument order and return zero values past the end, which only happens
// on a peer violating the protocol.
type message struct {
	header
	body []byte
	off  int
}

func (m *message) nextUint() uint32 {
	if m.off+4 > len(m.body) {
		return 0
	}
	v := binary.LittleEndian.Uint32(m.body[m.off:])
	m.off += 4
	return v
}

func (m *message) nextInt() int32 {
	return int32(m.nextUint())
}

func (m *message) nextString() string {
	n := int(m.nextUint())
	if n == 0 || m.off+n > len(m.body) {
		return ""
	}
	s := string(m.body[m.off : m.off+n-1]) // drop the NUL
	m.off += (n + 3) &^ 3
	return s
}
