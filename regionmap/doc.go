// Package regionmap loads multi-scale region hierarchies from MAT-files.
//
// A region map file holds three top-level variables:
//
//	regions          cell array of region structs (the root level)
//	image_shape      1x3 int32/int64: rows, cols, stride
//	atomic_SLIC_rle  Nx2 int32/int64: (run_length, value) pairs
//
// Each region struct has the fields
//
//	list_of_atomic_superpixels  int32/int64 vector, required
//	scale                       single/double scalar, required
//	children                    cell array of region structs, optional
//
// The loaders work on any [matvar.Value], so trees built in memory load the
// same way as trees decoded from a file:
//
//	f, err := regionmap.Open("regions.mat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	h, err := f.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(h.Regions), h.Size)
//
// Loaders stop at the first problem and return it unchanged: a
// *matvar.MissingFieldError, *matvar.InvalidShapeError or
// *matvar.UnsupportedTypeError whose Path names the offending value, e.g.
// regions{2}.children{1}.scale. The RLE decoder adds *RLEOverrunError,
// *RLERunError and, in strict mode, *RLEUnderrunError.
package regionmap
