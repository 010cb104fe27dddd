package crypto

import "errors"

var (
	// ErrInvalidKey indicates the configured key is not a hex-encoded
	// 32-byte (256-bit) string.
	ErrInvalidKey = errors.New("decryption key must be 64 hex characters (256 bits)")
	// ErrMalformedCiphertext indicates a value that carries the devEnc:
	// marker but whose IV or ciphertext part cannot be decoded.
	ErrMalformedCiphertext = errors.New("malformed encrypted value")
	// ErrInvalidPadding indicates the decrypted block carries invalid
	// PKCS#7 padding, which usually means a wrong key or a corrupted value.
	ErrInvalidPadding = errors.New("invalid padding in decrypted value")
)
