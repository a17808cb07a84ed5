package ihex

// hexDigit returns the value of one ASCII hex digit, or 0xFF when c is not
// a digit. Both letter cases are accepted.
func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return 0xFF
}

func decodeUint8(src []byte) (uint8, *Error) {
	if len(src) < 2 {
		return 0, newError(SyntaxError, 0, "hex byte needs two digits, have %d", len(src))
	}
	hi := hexDigit(src[0])
	if hi == 0xFF {
		return 0, newError(SyntaxError, 0, "invalid hex digit %q", src[0])
	}
	lo := hexDigit(src[1])
	if lo == 0xFF {
		return 0, newError(SyntaxError, 0, "invalid hex digit %q", src[1])
	}
	return hi<<4 | lo, nil
}

func decodeUint16(src []byte) (uint16, *Error) {
	if len(src) < 4 {
		return 0, newError(SyntaxError, 0, "hex word needs four digits, have %d", len(src))
	}
	hi, err := decodeUint8(src[0:2])
	if err != nil {
		return 0, err
	}
	lo, err := decodeUint8(src[2:4])
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// DecodeUint8 converts the first two ASCII hex digits of src into a byte.
// A short slice or a character outside 0-9A-Fa-f fails with SyntaxError.
func DecodeUint8(src []byte) (uint8, error) {
	v, err := decodeUint8(src)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// DecodeUint16 converts the first four ASCII hex digits of src into a
// 16-bit value, most significant digits first. Failure modes are those of
// DecodeUint8.
func DecodeUint16(src []byte) (uint16, error) {
	v, err := decodeUint16(src)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// recordChecksum computes the checksum byte that closes a record: the two's
// complement of the low byte of the sum of the length field, both address
// bytes, the type code and every data byte.
func recordChecksum(length uint8, address uint16, rtype RecordType, data []byte) uint8 {
	sum := int(length) + int(address>>8) + int(address&0xFF) + int(rtype)
	for _, b := range data {
		sum += int(b)
	}
	return uint8(256 - sum%256)
}
