// Package tagged implements the domain-separated SHA-256 primitives that
// every identifier in the engine is built from: tagged hashing and a
// Merkle construction over tagged leaves.
package tagged

import "crypto/sha256"

// Hash is a 32-byte tagged-hash output, used throughout the engine as OpId,
// BundleId, SchemaId, ContractId and SecretSeal.
type Hash [32]byte

// Hash256 implements the standard tagged-hash construction:
//
//	h := SHA256(tag)
//	SHA256(h || h || payload)
//
// Tags are fixed strings (e.g. "urn:lnp-bp:rgb:operation#2024-02-03") and
// MUST NOT be derived or interpolated at call sites.
func Hash256(tag string, payload []byte) Hash {
	h := New(tag)
	h.Write(payload)
	return h.Sum()
}

// Hasher is the streaming form of Hash256, for callers that build a payload
// incrementally instead of assembling it in one buffer.
type Hasher struct {
	inner [32]byte
	buf   []byte
}

// New starts a tagged-hash computation for tag.
func New(tag string) *Hasher {
	th := sha256.Sum256([]byte(tag))
	h := &Hasher{inner: th}
	h.buf = append(h.buf, th[:]...)
	h.buf = append(h.buf, th[:]...)
	return h
}

// Write appends payload bytes to the hash state.
func (h *Hasher) Write(p []byte) {
	h.buf = append(h.buf, p...)
}

// Sum finalizes and returns the tagged-hash digest.
func (h *Hasher) Sum() Hash {
	return Hash(sha256.Sum256(h.buf))
}
