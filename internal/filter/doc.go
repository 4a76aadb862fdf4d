// Package filter implements the compression stage of the MAT-file container.
//
// Level-5 MAT files written with compression wrap each top-level variable in a
// single miCOMPRESSED data element whose payload is a zlib stream. Inflating
// that stream yields exactly one uncompressed data element, normally an
// miMATRIX.
//
// # Supported Filters
//
//   - DEFLATE: zlib compression via [Deflate], backed by
//     github.com/klauspost/compress/zlib.
//
// # Size Limits
//
// A compressed element states only its compressed size. [Deflate] caps the
// inflated output at [Deflate.MaxSize] bytes and fails with [ErrTooLarge]
// beyond that, so a small hostile file cannot force an unbounded allocation.
//
// # Key Types
//
//   - [Filter]: Interface implemented by all filters (Decode and Encode)
//   - [Deflate]: zlib inflate/deflate
package filter
