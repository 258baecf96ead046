// Package style implements the cartoon style pipeline engine: the
// image-space stages (edge-preserving smoothing, edge extraction, color
// quantization, color space enhancement, masked compositing) and the
// non-photorealistic stylizers built from them, together with the registry
// that composes stages into named styles and the engine that runs them.
//
// Every stage is a pure function from Frame (plus parameters) to Frame:
// no shared mutable state, no I/O, no internal goroutines. The engine is
// therefore safe to invoke concurrently for independent requests as long
// as each call owns its input frame. Batch conversion runs items on a
// bounded worker pool and isolates per-item failures.
//
// Styles are data, not code paths: a StyleConfig record carries every
// stage parameter for one named style, and adding a style means adding a
// config to the registry table.
package style
