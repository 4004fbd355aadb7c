// Package bigint implements arbitrary-precision signed decimal integers.
//
// An Int stores its magnitude as base-10 digits, least-significant digit first,
// together with a sign flag. There is no fixed width and therefore no overflow:
// the only limit on a value is available memory.
//
// Values are created by Parse, MustParse, Zero, One and FromInt64, and by the
// arithmetic functions Add, Sub, Mul, Neg and Abs. Every constructor returns a
// value in canonical form:
//
//   - no non-significant leading zero digits are stored;
//   - zero has no digits and is never negative.
//
// Int values are immutable. The arithmetic functions read their operands and
// always allocate a fresh digit slice for the result, so an Int may be shared
// freely between goroutines.
//
// Text leaves the package through String, Format (the fmt verbs %d, %s and
// %v), MarshalText and MarshalJSON.
//
//	a := bigint.MustParse("-12")
//	b := bigint.MustParse("0034")
//	fmt.Println(bigint.Mul(a, b)) // -408
package bigint
