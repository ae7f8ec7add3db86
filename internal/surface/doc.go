// Package surface manages the presentation side of the daemon: a
// memory-mapped backing store shared with the compositor and the state
// machine that moves frames through a Session.
//
// Lifecycle:
//
//   - A Surface starts unconfigured. The first configure event sizes the
//     backing store (zero dimensions fall back to 1920x1080) and moves it
//     to the configured state.
//   - AcquireDrawable hands out the mapped pixel region for painting. The
//     mapping is created lazily and reused frame to frame.
//   - Submit shares the store with the compositor through an shm pool,
//     carves a buffer at the current dimensions, attaches it, damages the
//     full surface, and commits. The first commit moves the surface to the
//     presenting state.
//   - Reconfigures resize the store in place. The pool only ever grows;
//     the buffer is recreated only when the dimensions actually changed.
//
// The Session interface keeps the package independent of the wire
// protocol; internal/wayland provides the real implementation and
// NullSession a recording one for tests.
package surface
