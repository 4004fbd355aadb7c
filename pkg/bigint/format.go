package bigint

import (
	"bytes"
	"fmt"
	"strings"
)

// String returns the canonical decimal representation of x: "0" for zero,
// otherwise the digits most-significant first, prefixed by '-' when x is
// negative.
func (x Int) String() string {
	return string(x.appendText(nil))
}

// appendText appends the canonical representation of x to buf.
func (x Int) appendText(buf []byte) []byte {
	if len(x.digits) == 0 {
		return append(buf, '0')
	}
	if x.neg {
		buf = append(buf, '-')
	}
	for i := len(x.digits) - 1; i >= 0; i-- {
		buf = append(buf, '0'+x.digits[i])
	}
	return buf
}

// Format implements fmt.Formatter. It accepts the verbs %d, %s and %v.
// The '+' flag forces a sign on non-negative values, a width pads with
// spaces on the left (or on the right with '-'), and the '0' flag pads
// with zeros between the sign and the digits.
func (x Int) Format(s fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", verb, x.String())
		return
	}

	var sign string
	switch {
	case x.neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	}
	body := Abs(x).String()

	width, hasWidth := s.Width()
	pad := 0
	if hasWidth {
		pad = width - len(sign) - len(body)
	}
	if pad <= 0 {
		_, _ = s.Write([]byte(sign + body))
		return
	}

	switch {
	case s.Flag('-'):
		_, _ = s.Write([]byte(sign + body + strings.Repeat(" ", pad)))
	case s.Flag('0'):
		_, _ = s.Write([]byte(sign + strings.Repeat("0", pad) + body))
	default:
		_, _ = s.Write([]byte(strings.Repeat(" ", pad) + sign + body))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return x.appendText(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver is replaced
// by the parsed value; on error it is left unchanged.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON implements json.Marshaler. The value is emitted as a JSON
// number.
func (x Int) MarshalJSON() ([]byte, error) {
	return x.appendText(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a JSON number or a
// JSON string holding an integer. A JSON null leaves the receiver unchanged.
func (x *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return x.UnmarshalText(data)
}
