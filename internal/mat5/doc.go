// Package mat5 reads and writes level-5 MAT-files.
//
// A level-5 MAT-file is a 128-byte header followed by a flat sequence of
// tagged data elements, one per top-level variable. Each element starts with
// an 8-byte tag:
//
//	Offset  Size  Field
//	0       4     Data type (miINT8 ... miUTF32, miMATRIX, miCOMPRESSED)
//	4       4     Number of payload bytes
//	8       n     Payload, padded to an 8-byte boundary
//
// Payloads of at most 4 bytes may use the small data element format, where
// the upper 16 bits of the first word hold the byte count, the lower 16 bits
// hold the type and the payload sits in the second word.
//
// # Header
//
//	Offset  Size  Field
//	0       116   Descriptive text
//	116     8     Subsystem data offset
//	124     2     Version (0x0100)
//	126     2     Endian indicator: "IM" little-endian, "MI" big-endian
//
// Version 7.3 files are HDF5 containers and are rejected with [ErrUnsupported].
//
// # Matrices
//
// An miMATRIX payload is itself a sequence of sub-elements: array flags
// (class, complex, global and logical bits), dimensions, array name and then
// class-specific data. Numeric classes store a real part and, when complex,
// an imaginary part, in any numeric storage type. Cell arrays store one
// nested miMATRIX per element in column-major order. Struct arrays store the
// maximum field name length, the packed field names, and then one nested
// miMATRIX per element per field.
//
// Every decoded matrix becomes a *matvar.Array whose data is widened to the
// class's little-endian layout, so callers never see the storage type.
//
// # Compression
//
// Files saved with compression wrap each top-level variable in one
// miCOMPRESSED element whose payload inflates (see internal/filter) to a
// single miMATRIX element.
//
// # Key Types
//
//   - [File]: An open MAT-file with its variable index
//   - [Header]: Parsed file header
//   - [VarInfo]: Name, class and dimensions of a top-level variable
//   - [Encoder]: Writes variables to a new MAT-file
package mat5
