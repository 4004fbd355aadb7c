package bigint

// Mul returns a * b using grade-school long multiplication.
//
// For each digit of b, the partial product of a by that digit is formed in a
// scratch buffer and added into a single accumulator at the digit's
// position. Every primitive step is a single-digit multiply with carry, so
// intermediate values never exceed 9*9+9. The cost is O(len(a)*len(b))
// digit operations. Neither operand is modified.
func Mul(a, b Int) Int {
	if a.IsZero() || b.IsZero() {
		return Int{}
	}
	x, y := a.digits, b.digits
	// Iterate over the shorter operand to minimise the number of rows.
	if len(y) > len(x) {
		x, y = y, x
	}

	acc := make([]byte, len(x)+len(y))
	partial := make([]byte, 0, len(x)+1)
	for i, d := range y {
		if d == 0 {
			continue
		}
		partial = mulDigit(partial[:0], x, d)
		addAt(acc, partial, i)
	}
	return normalize(a.neg != b.neg, acc)
}

// mulDigit appends the digits of |x| * d to dst and returns the extended
// slice. d must be in [1, 9].
func mulDigit(dst, x []byte, d byte) []byte {
	var carry byte
	for _, xd := range x {
		t := xd*d + carry
		dst = append(dst, t%10)
		carry = t / 10
	}
	if carry != 0 {
		dst = append(dst, carry)
	}
	return dst
}
