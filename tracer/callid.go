package tracer

import "math/rand"

const callIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newCallID mints a fresh call-site identifier:
// six random alphanumeric characters, unique enough within one traced
// run to distinguish call sites without the bookkeeping of a counter
// that would have to be threaded through every Mediator. No library in
// the retrieval pack specializes in identifier generation narrowly
// enough to prefer over math/rand for this.
func newCallID() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = callIDAlphabet[rand.Intn(len(callIDAlphabet))]
	}
	return string(b)
}
