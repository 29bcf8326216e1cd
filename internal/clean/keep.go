package clean

// IsKept reports whether c survives filtering. Only the classic ASCII
// letters count as alphabetic; bytes >= 0x80 are always dropped.
func IsKept(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c == ' ', c == '\n':
		return true
	default:
		return false
	}
}

// AppendKept appends the kept bytes of src to dst and returns the extended
// slice. dst and src may share the same backing array when dst is src[:0].
func AppendKept(dst, src []byte) []byte {
	for _, c := range src {
		if IsKept(c) {
			dst = append(dst, c)
		}
	}

	return dst
}

// Bytes returns a new slice holding the kept bytes of b.
func Bytes(b []byte) []byte {
	return AppendKept(make([]byte, 0, len(b)), b)
}

// String is the string form of [Bytes].
func String(s string) string {
	return string(Bytes([]byte(s)))
}
