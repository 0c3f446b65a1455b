// Package pairing defines the capability boundary for link-layer encryption without
// implementing it.
//
// The cryptographic pairing handshake (ECDH + AEAD) is explicitly out of scope: the
// original firmware stubs it but never implements it, and this module preserves that as a
// Non-goal rather than inventing a scheme (spec.md §1, §9). Cipher exists so a future
// implementation has a place to plug in without protocol.RunDongle/RunKeyboardHalf needing
// to change shape around it.
package pairing

// Cipher seals and opens the payload a keyboard half or dongle puts on the air, once a
// pairing handshake has produced a shared key. There is no implementation of this
// interface in this module.
type Cipher interface {
	// Seal encrypts and authenticates plaintext, returning ciphertext no larger than
	// plaintext plus the implementation's fixed overhead.
	Seal(plaintext []byte) (ciphertext []byte, err error)
	// Open authenticates and decrypts ciphertext produced by Seal.
	Open(ciphertext []byte) (plaintext []byte, err error)
}
