package bigint

// Add returns a + b.
//
// The sign of the result is resolved from the operand signs and, when they
// differ, from a comparison of magnitudes; the digits are then produced by a
// magnitude addition or subtraction. Neither operand is modified.
func Add(a, b Int) Int {
	if a.neg == b.neg {
		return normalize(a.neg, addAbs(a.digits, b.digits))
	}
	// Signs differ: the result takes the sign of the larger magnitude.
	switch cmpAbs(a.digits, b.digits) {
	case 1:
		return normalize(a.neg, subAbs(a.digits, b.digits))
	case -1:
		return normalize(b.neg, subAbs(b.digits, a.digits))
	default:
		return Int{}
	}
}

// Sub returns a - b.
func Sub(a, b Int) Int {
	return Add(a, Neg(b))
}

// cmpAbs compares two magnitudes stored least-significant digit first and
// returns -1, 0 or +1. Both inputs must be free of most-significant zeros.
func cmpAbs(x, y []byte) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addAbs returns the digits of |x| + |y| in a newly allocated slice.
func addAbs(x, y []byte) []byte {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]byte, len(x), len(x)+1)
	var carry byte
	for i := range x {
		sum := x[i] + carry
		if i < len(y) {
			sum += y[i]
		}
		if sum >= 10 {
			z[i] = sum - 10
			carry = 1
		} else {
			z[i] = sum
			carry = 0
		}
	}
	if carry != 0 {
		z = append(z, carry)
	}
	return z
}

// subAbs returns the digits of |x| - |y| in a newly allocated slice.
// It requires |x| >= |y|. The result may carry most-significant zeros.
func subAbs(x, y []byte) []byte {
	z := make([]byte, len(x))
	var borrow int
	for i := range x {
		diff := int(x[i]) - borrow
		if i < len(y) {
			diff -= int(y[i])
		}
		if diff < 0 {
			diff += 10
			borrow = 1
		} else {
			borrow = 0
		}
		z[i] = byte(diff)
	}
	return z
}

// addAt adds the magnitude y, shifted left by shift decimal places, into
// acc in place. acc must be long enough to absorb the final carry.
func addAt(acc, y []byte, shift int) {
	var carry byte
	i := 0
	for ; i < len(y); i++ {
		sum := acc[shift+i] + y[i] + carry
		if sum >= 10 {
			acc[shift+i] = sum - 10
			carry = 1
		} else {
			acc[shift+i] = sum
			carry = 0
		}
	}
	for k := shift + i; carry != 0; k++ {
		sum := acc[k] + carry
		if sum >= 10 {
			acc[k] = sum - 10
		} else {
			acc[k] = sum
			carry = 0
		}
	}
}
