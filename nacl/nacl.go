// Package nacl provides a libsodium-flavoured crypto suite for pwbox:
// scrypt key derivation paired with the NaCl secretbox cipher
// (XSalsa20-Poly1305).
//
// Usage:
//
//	box, err := nacl.Suite().Seal(password, message)
//
//	eraser := pwbox.NewEraser().AddSuite(nacl.Suite())
package nacl

import (
	"github.com/awnumar/memguard"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/rbaliyan/pwbox"
)

// Canonical registered names.
const (
	KDFName    = "scrypt-nacl"
	CipherName = "xsalsa20-poly1305"
)

// saltLen matches libsodium's crypto_pwhash_scryptsalsa208sha256 salt size.
const saltLen = 32

// Scrypt is the scrypt KDF. One value corresponds to one difficulty setting.
type Scrypt struct {
	// N is the CPU/memory cost. It must be a power of two greater than one.
	N int `json:"n"`

	// R is the block size parameter.
	R int `json:"r"`

	// P is the parallelization parameter.
	P int `json:"p"`
}

// Compile-time interface check.
var _ pwbox.DeriveKey = (*Scrypt)(nil)

// Interactive returns parameters suitable for interactive logins,
// equivalent to libsodium's interactive preset.
func Interactive() Scrypt {
	return Scrypt{N: 1 << 14, R: 8, P: 1}
}

// Sensitive returns parameters for highly sensitive, non-interactive use,
// equivalent to libsodium's sensitive preset.
func Sensitive() Scrypt {
	return Scrypt{N: 1 << 20, R: 8, P: 1}
}

// Light returns deliberately weak parameters for tests. Do not use in
// production.
func Light() Scrypt {
	return Scrypt{N: 1 << 10, R: 8, P: 1}
}

// SaltLen returns the scrypt salt size.
func (Scrypt) SaltLen() int {
	return saltLen
}

// DeriveKey fills buf with an scrypt-derived key.
func (s Scrypt) DeriveKey(buf, password, salt []byte) error {
	dk, err := scrypt.Key(password, salt, s.N, s.R, s.P, len(buf))
	if err != nil {
		return err
	}
	copy(buf, dk)
	memguard.WipeBytes(dk)
	return nil
}

// SecretBox is the NaCl secretbox authenticated cipher (XSalsa20-Poly1305).
type SecretBox struct{}

// Compile-time interface check.
var _ pwbox.Cipher = SecretBox{}

// KeyLen returns the XSalsa20 key size.
func (SecretBox) KeyLen() int { return 32 }

// NonceLen returns the XSalsa20 nonce size.
func (SecretBox) NonceLen() int { return 24 }

// MACLen returns the Poly1305 tag size.
func (SecretBox) MACLen() int { return secretbox.Overhead }

// Seal encrypts and authenticates message.
func (SecretBox) Seal(message, nonce, key []byte) *pwbox.CipherOutput {
	var k [32]byte
	var n [24]byte
	copy(k[:], key)
	copy(n[:], nonce)
	defer memguard.WipeBytes(k[:])

	// secretbox prepends the Poly1305 tag to the ciphertext.
	sealed := secretbox.Seal(nil, message, &n, &k)
	return &pwbox.CipherOutput{
		Ciphertext: sealed[secretbox.Overhead:],
		MAC:        sealed[:secretbox.Overhead],
	}
}

// Open verifies and decrypts enc into output.
func (SecretBox) Open(output []byte, enc *pwbox.CipherOutput, nonce, key []byte) error {
	var k [32]byte
	var n [24]byte
	copy(k[:], key)
	copy(n[:], nonce)
	defer memguard.WipeBytes(k[:])

	boxed := make([]byte, 0, len(enc.MAC)+len(enc.Ciphertext))
	boxed = append(append(boxed, enc.MAC...), enc.Ciphertext...)
	if _, ok := secretbox.Open(output[:0], boxed, &n, &k); !ok {
		return pwbox.ErrMACMismatch
	}
	return nil
}

// Suite returns the scrypt + XSalsa20-Poly1305 pair under its canonical
// names, with interactive scrypt parameters as the default.
func Suite() pwbox.Suite {
	return pwbox.Suite{
		KDFName: KDFName,
		NewKDF: func() pwbox.DeriveKey {
			s := Interactive()
			return &s
		},
		CipherName: CipherName,
		Cipher:     SecretBox{},
	}
}
