// Package xchacha provides a modern crypto suite for pwbox: Argon2id key
// derivation paired with XChaCha20-Poly1305.
//
// This is the recommended suite for new applications.
package xchacha

import (
	"errors"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/rbaliyan/pwbox"
)

// Canonical registered names.
const (
	KDFName    = "argon2id"
	CipherName = "xchacha20-poly1305"
)

const saltLen = 16

// Argon2 is the Argon2id KDF.
type Argon2 struct {
	// Time is the number of passes over the memory.
	Time uint32 `json:"time"`

	// Memory is the memory size in KiB.
	Memory uint32 `json:"memory"`

	// Threads is the degree of parallelism.
	Threads uint8 `json:"threads"`
}

// Compile-time interface check.
var _ pwbox.DeriveKey = (*Argon2)(nil)

// Default returns the RFC 9106 recommended parameters for memory-rich
// environments: one pass over 64 MiB with four lanes.
func Default() Argon2 {
	return Argon2{Time: 1, Memory: 64 * 1024, Threads: 4}
}

// Light returns deliberately weak parameters for tests. Do not use in
// production.
func Light() Argon2 {
	return Argon2{Time: 1, Memory: 8 * 1024, Threads: 1}
}

// SaltLen returns the Argon2 salt size.
func (Argon2) SaltLen() int {
	return saltLen
}

// DeriveKey fills buf with an Argon2id-derived key.
func (a Argon2) DeriveKey(buf, password, salt []byte) error {
	if a.Time == 0 || a.Threads == 0 {
		return errors.New("xchacha: Argon2 time and threads must be positive")
	}
	dk := argon2.IDKey(password, salt, a.Time, a.Memory, a.Threads, uint32(len(buf)))
	copy(buf, dk)
	memguard.WipeBytes(dk)
	return nil
}

// Cipher is the XChaCha20-Poly1305 AEAD.
type Cipher struct{}

// Compile-time interface check.
var _ pwbox.Cipher = Cipher{}

// KeyLen returns the ChaCha20 key size.
func (Cipher) KeyLen() int { return chacha20poly1305.KeySize }

// NonceLen returns the extended (X) nonce size.
func (Cipher) NonceLen() int { return chacha20poly1305.NonceSizeX }

// MACLen returns the Poly1305 tag size.
func (Cipher) MACLen() int { return chacha20poly1305.Overhead }

// Seal encrypts and authenticates message.
func (Cipher) Seal(message, nonce, key []byte) *pwbox.CipherOutput {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		// The key length is fixed by KeyLen; reaching this is a bug in the
		// calling container, not an input condition.
		panic(err)
	}

	// The AEAD appends the Poly1305 tag to the ciphertext.
	sealed := aead.Seal(nil, nonce, message, nil)
	return &pwbox.CipherOutput{
		Ciphertext: sealed[:len(message)],
		MAC:        sealed[len(message):],
	}
}

// Open verifies and decrypts enc into output.
func (Cipher) Open(output []byte, enc *pwbox.CipherOutput, nonce, key []byte) error {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		panic(err)
	}

	boxed := make([]byte, 0, len(enc.Ciphertext)+len(enc.MAC))
	boxed = append(append(boxed, enc.Ciphertext...), enc.MAC...)
	if _, err := aead.Open(output[:0], nonce, boxed, nil); err != nil {
		return pwbox.ErrMACMismatch
	}
	return nil
}

// Suite returns the Argon2id + XChaCha20-Poly1305 pair under its canonical
// names, with Default Argon2 parameters.
func Suite() pwbox.Suite {
	return pwbox.Suite{
		KDFName: KDFName,
		NewKDF: func() pwbox.DeriveKey {
			a := Default()
			return &a
		},
		CipherName: CipherName,
		Cipher:     Cipher{},
	}
}
