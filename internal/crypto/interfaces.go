// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package crypto

// ValueCipher handles the cryptography for marked configuration values.
// It knows nothing about the ensemble, the watched node, or the environment
// sink; its only job is to translate between plaintext values and the
// devEnc: wire form.
//
// Wire form of an encrypted value:
//
//	devEnc:<32 hex chars IV><hex ciphertext>
//
// The IV is 16 bytes, the cipher is AES-256-CBC, and the plaintext is padded
// with PKCS#7 before encryption. CBC carries no authentication tag, so a
// corrupted ciphertext or a wrong key produces garbage (or a padding error)
// rather than a clean authentication failure.
type ValueCipher interface {
	// Decrypt takes a value in wire form (the devEnc: marker is stripped if
	// present), splits out the hex-encoded IV and ciphertext, and returns
	// the UTF-8 plaintext. Returns an error if the hex is malformed, the
	// ciphertext length is not a multiple of the block size, or the
	// recovered padding is invalid.
	Decrypt(value string) (string, error)

	// Encrypt produces the wire form of plaintext under a freshly generated
	// random IV. Decrypt(Encrypt(p)) == p for every UTF-8 plaintext p.
	Encrypt(plaintext string) (string, error)
}
