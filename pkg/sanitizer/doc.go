// Package sanitizer turns request bodies into store documents.
//
// Bodies are decoded with number preservation so that integral values are
// stored as BSON integers rather than doubles. Integers that fit in 32 bits
// become int32, larger ones int64, and everything else float64. Nested
// objects and arrays are normalized recursively.
package sanitizer
