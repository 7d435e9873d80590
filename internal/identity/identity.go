// Package identity derives stable, non-cryptographic fingerprints from
// author names so the same author maps to the same identity across crawls.
package identity

import "strconv"

// Prefix is prepended to every rendered fingerprint.
const Prefix = "user_"

// Fingerprint computes a deterministic 32-bit rolling hash over the author
// string (h = h*31 + code, truncated to 32 bits) and renders its absolute
// value as a decimal string with the user_ prefix. Distinct authors may
// collide; that is accepted.
func Fingerprint(author string) string {
	var h int32
	for _, code := range author {
		h = h*31 + int32(code)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return Prefix + strconv.FormatInt(v, 10)
}
