// Package wayland is a client for the slice of the Wayland protocol a
// background wallpaper needs. It speaks the wire format directly over the
// compositor's unix socket: wl_display, wl_registry, wl_compositor, wl_shm
// and wl_buffer from the core protocol, plus the wlr layer-shell extension
// for anchoring a surface to the background layer.
//
// The connection is split across two goroutines. Requests are serialized
// and written on the caller's goroutine; a reader goroutine decodes events,
// acks layer-surface configures itself, and forwards the digested
// surface.Event values on a channel. Pixel data never crosses the socket:
// the shm pool's file descriptor travels once as SCM_RIGHTS ancillary data
// and frames are committed by reference.
//
// Interfaces the compositor must advertise: wl_compositor, wl_shm and
// zwlr_layer_shell_v1. Connect fails with a descriptive error when any is
// missing, which is the usual outcome on desktops without layer-shell.
package wayland
