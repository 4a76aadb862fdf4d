// Package matvar provides typed access to self-describing values read from
// MAT-file containers.
//
// A [Value] is one decoded variable or nested element: a numeric array, a
// char or logical array, a struct array (record) or a cell array (sequence).
// Values expose their class tag, dimensions and raw little-endian bytes
// without copying. The container reader in this module produces Values, and
// the constructors in this package ([NewInt32], [NewStruct], [NewCell], ...)
// build them in memory.
//
// # Accessor
//
// [Accessor] wraps a Value together with a display path such as
// "regions{2}.children{1}.scale" and provides the checks that loaders share:
//
//	a := matvar.Wrap(v)
//	list, _, err := a.Field("list_of_atomic_superpixels", false)
//	ids, err := list.Ints(matvar.Int32, matvar.Int64)
//
// # Errors
//
// Failures are reported as [*MissingFieldError], [*InvalidShapeError] and
// [*UnsupportedTypeError]. Each matches its sentinel ([ErrMissingField],
// [ErrInvalidShape], [ErrUnsupportedType]) with errors.Is and carries the path
// of the offending value.
//
// # Class Mapping
//
//	MAT class         | Class     | Data() layout
//	------------------|-----------|------------------------------
//	mxDOUBLE_CLASS    | Double    | float64, little-endian
//	mxSINGLE_CLASS    | Single    | float32, little-endian
//	mxINT8..UINT64    | Int8..    | native width, little-endian
//	mxCHAR_CLASS      | Char      | UTF-8 text
//	logical uint8     | Logical   | one byte per element
//	mxSTRUCT_CLASS    | Struct    | none; see Field
//	mxCELL_CLASS      | Cell      | none; see Cells
package matvar
