package securemem

import (
	"encoding/base64"
	"encoding/hex"
)

// Equal compares two byte slices in constant time with respect to the
// content (length is public and short-circuits, per spec §4.3). It
// accumulates the XOR of every paired byte into a single accumulator and
// reports whether the accumulator is zero. Every MAC/signature/hash
// comparison in this module must route through this function — never the
// language's built-in equality.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// EqualHex decodes both hex strings and compares them in constant time.
// Malformed hex is treated as unequal, not an error — the comparison is
// the caller's whole concern here.
func EqualHex(a, b string) bool {
	da, errA := hex.DecodeString(a)
	db, errB := hex.DecodeString(b)
	if errA != nil || errB != nil {
		return false
	}
	return Equal(da, db)
}

// EqualBase64 decodes both Base64 strings and compares them in constant
// time.
func EqualBase64(a, b string) bool {
	da, errA := base64.StdEncoding.DecodeString(a)
	db, errB := base64.StdEncoding.DecodeString(b)
	if errA != nil || errB != nil {
		return false
	}
	return Equal(da, db)
}
