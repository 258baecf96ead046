// Package server exposes the conversion service over HTTP.
//
// The surface is a small REST API: multipart uploads go to /api/convert
// and /api/batch-convert, style discovery lives at /api/styles, and
// /health, /api/stats and /api/cleanup cover operations. Styles are
// dispatched to the pipeline engine first and to the model backend for
// the names the engine does not know, so clients see one flat style
// namespace.
//
// Handlers translate the typed errors of the inner packages into status
// codes: validation failures map to 400 or 413, unknown styles to 400,
// and processing failures to 500. Response bodies are JSON except for
// successful single conversions, which stream the encoded image.
package server
