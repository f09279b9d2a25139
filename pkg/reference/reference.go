// Package reference generates human-facing booking reference codes.
package reference

import "math/rand"

const (
	refLength  = 8
	refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// New returns an 8-character uppercase alphanumeric reference. Codes are
// random, not guaranteed unique; the booking id remains the primary key and
// the reference is display-only.
func New() string {
	b := make([]byte, refLength)
	for i := range b {
		b[i] = refCharset[rand.Intn(len(refCharset))]
	}
	return string(b)
}
