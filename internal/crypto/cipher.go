// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// EncryptedValuePrefix marks a configuration value as encrypted. Everything
// after the marker is hex: first the 16-byte IV (32 hex characters), then
// the AES-256-CBC ciphertext.
const EncryptedValuePrefix = "devEnc:"

// ivHexLen is the length of the hex-encoded IV that follows the marker.
const ivHexLen = 2 * aes.BlockSize

// valueCipher is the private implementation of [ValueCipher].
type valueCipher struct {
	key []byte // 32 bytes, AES-256
}

// NewValueCipher constructs a [ValueCipher] from a hex-encoded 256-bit key.
// Returns [ErrInvalidKey] if the string is not valid hex or does not decode
// to exactly 32 bytes.
func NewValueCipher(hexKey string) (ValueCipher, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
	}

	return &valueCipher{key: key}, nil
}

// Decrypt implements [ValueCipher]. It strips the devEnc: marker if present,
// decodes the IV and ciphertext from hex, decrypts with AES-256-CBC, and
// removes the PKCS#7 padding.
func (c *valueCipher) Decrypt(value string) (string, error) {
	payload := strings.TrimPrefix(value, EncryptedValuePrefix)
	if len(payload) < ivHexLen {
		return "", fmt.Errorf("%w: shorter than IV", ErrMalformedCiphertext)
	}

	iv, err := hex.DecodeString(payload[:ivHexLen])
	if err != nil {
		return "", fmt.Errorf("%w: decode iv: %s", ErrMalformedCiphertext, err)
	}

	ciphertext, err := hex.DecodeString(payload[ivHexLen:])
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext: %s", ErrMalformedCiphertext, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a block multiple", ErrMalformedCiphertext, len(ciphertext))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	// CBC has no auth tag; a wrong key surfaces here as bad padding, if at all.
	plaintext, err = pkcs7Unpad(plaintext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// Encrypt implements [ValueCipher]. It pads plaintext with PKCS#7, encrypts
// it with AES-256-CBC under a random 16-byte IV, and returns the wire form:
// devEnc: marker, hex IV, hex ciphertext. Returns an error if the random IV
// read fails.
func (c *valueCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return EncryptedValuePrefix + hex.EncodeToString(iv) + hex.EncodeToString(ciphertext), nil
}

// pkcs7Pad appends 1..blockSize padding bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad strips PKCS#7 padding. Returns [ErrInvalidPadding] if the last
// byte does not describe a valid pad or any pad byte disagrees with it.
func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPadding
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-padLen], nil
}
