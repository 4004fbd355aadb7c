package bigint

// Int is a signed decimal integer of unbounded magnitude.
//
// The zero value is the integer 0 and is ready to use.
type Int struct {
	// neg is true for negative values. It is always false for zero.
	neg bool
	// digits holds the magnitude, least-significant digit first. Each element
	// is in [0, 9] and the last element is never 0. Zero has no digits.
	digits []byte
}

// Zero returns the integer 0.
func Zero() Int { return Int{} }

// One returns the integer 1.
func One() Int { return Int{digits: []byte{1}} }

// FromInt64 returns the Int holding the value of x.
func FromInt64(x int64) Int {
	neg := x < 0
	// Work on the unsigned magnitude so that math.MinInt64 is representable.
	u := uint64(x)
	if neg {
		u = -u
	}
	digits := make([]byte, 0, 20)
	for u > 0 {
		digits = append(digits, byte(u%10))
		u /= 10
	}
	return normalize(neg, digits)
}

// normalize returns the canonical Int for the given sign and magnitude.
//
// Most-significant zero digits are trimmed; an empty or all-zero magnitude
// yields canonical zero regardless of neg. normalize takes ownership of
// digits: callers must pass a slice nobody else references.
func normalize(neg bool, digits []byte) Int {
	n := len(digits)
	for n > 0 && digits[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Int{}
	}
	return Int{neg: neg, digits: digits[:n:n]}
}

// Sign returns -1 if x < 0, 0 if x == 0 and +1 if x > 0.
func (x Int) Sign() int {
	switch {
	case len(x.digits) == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero reports whether x is 0.
func (x Int) IsZero() bool { return len(x.digits) == 0 }

// IsNeg reports whether x is strictly negative.
func (x Int) IsNeg() bool { return x.neg }

// DigitCount returns the number of significant decimal digits of x.
// Zero has no digits.
func (x Int) DigitCount() int { return len(x.digits) }

// Neg returns -x.
func Neg(x Int) Int {
	if x.IsZero() {
		return Int{}
	}
	return Int{neg: !x.neg, digits: x.digits}
}

// Abs returns |x|.
func Abs(x Int) Int {
	return Int{digits: x.digits}
}
