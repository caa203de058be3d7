package core

// Itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	u := uint64(n)
	if negative {
		u = uint64(-n)
	}

	s := Utoa(u)
	if negative {
		return "-" + s
	}
	return s
}

// Utoa converts an unsigned integer to a string
func Utoa(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)

	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// Hex converts an unsigned integer to a 0x-prefixed hex string
func Hex(n uint64) string {
	if n == 0 {
		return "0x0"
	}

	const hexDigits = "0123456789abcdef"
	var buf [18]byte
	pos := len(buf)

	for n > 0 {
		pos--
		buf[pos] = hexDigits[n&0xf]
		n >>= 4
	}

	// Add 0x prefix
	pos -= 2
	buf[pos] = '0'
	buf[pos+1] = 'x'

	return string(buf[pos:])
}
