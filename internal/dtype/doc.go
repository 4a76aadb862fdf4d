// Package dtype maps MAT-file storage types and array classes onto matvar classes.
//
// A level-5 MAT file separates two notions of type:
//
//   - The storage type of a data element (miINT8 ... miUTF32), which says how
//     the bytes of one element are laid out on disk.
//   - The array class of a matrix (mxDOUBLE_CLASS ... mxUINT64_CLASS), which
//     says what the values mean.
//
// Writers may store a matrix in a narrower type than its class (MATLAB saves
// an integral double array as miUINT8 when it fits, for example). Readers must
// widen the stored elements back to the class.
//
// # Type Mapping Strategy
//
//	Array class       | matvar.Class | Natural storage type
//	------------------|--------------|---------------------
//	mxDOUBLE_CLASS    | Double       | miDOUBLE
//	mxSINGLE_CLASS    | Single       | miSINGLE
//	mxINT8_CLASS      | Int8         | miINT8
//	mxUINT8_CLASS     | Uint8        | miUINT8 (Logical when flagged)
//	mxINT16_CLASS     | Int16        | miINT16
//	mxUINT16_CLASS    | Uint16       | miUINT16
//	mxINT32_CLASS     | Int32        | miINT32
//	mxUINT32_CLASS    | Uint32       | miUINT32
//	mxINT64_CLASS     | Int64        | miINT64
//	mxUINT64_CLASS    | Uint64       | miUINT64
//	mxCHAR_CLASS      | Char         | miUTF8 / miUINT16 / miUTF16
//	mxCELL_CLASS      | Cell         | nested miMATRIX
//	mxSTRUCT_CLASS    | Struct       | nested miMATRIX
//
// # Key Functions
//
//   - [Convert]: widens or narrows stored elements to a class's little-endian layout
//   - [Encode]: returns the natural storage type of a class and its data in a byte order
//   - [ArrayClass.Class]: maps an array class to a matvar.Class
//   - [FromClass]: maps a matvar.Class back to an array class
package dtype
