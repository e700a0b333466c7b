// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to pull plain
// text out of a specific MIME type.
//
// Extractors are registered with the Registry at startup; the registry
// dispatches by MIME type and falls back to best-effort UTF-8 decoding
// for unknown types.
package extractors
