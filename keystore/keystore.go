// Package keystore provides an Ethereum-keystore-flavoured crypto suite for
// pwbox: scrypt or PBKDF2 key derivation paired with AES-128-CTR and
// HMAC-SHA256, composed via encrypt-then-MAC.
//
// The suite registers scrypt as its default KDF. To also restore boxes
// sealed with PBKDF2, register it alongside:
//
//	eraser := pwbox.NewEraser().
//	    AddSuite(keystore.Suite()).
//	    AddKDF(keystore.PBKDF2Name, func() pwbox.DeriveKey {
//	        p := keystore.DefaultPBKDF2()
//	        return &p
//	    })
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"errors"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"github.com/rbaliyan/pwbox"
)

// Canonical registered names.
const (
	KDFName    = "scrypt"
	PBKDF2Name = "pbkdf2"
	CipherName = "aes-128-ctr"
)

const saltLen = 32

// Scrypt is the scrypt KDF with keystore-conventional parameters.
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

// DefaultScrypt returns the standard keystore scrypt parameters.
func DefaultScrypt() Scrypt {
	return Scrypt{N: 1 << 18, R: 8, P: 1}
}

// LightScrypt returns deliberately weak parameters for tests. Do not use in
// production.
func LightScrypt() Scrypt {
	return Scrypt{N: 1 << 12, R: 8, P: 1}
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

// PBKDF2 is the PBKDF2 KDF over HMAC-SHA256.
type PBKDF2 struct {
	// C is the iteration count.
	C int `json:"c"`
}

// Compile-time interface check.
var _ pwbox.DeriveKey = (*PBKDF2)(nil)

// DefaultPBKDF2 returns the standard keystore iteration count.
func DefaultPBKDF2() PBKDF2 {
	return PBKDF2{C: 262144}
}

// LightPBKDF2 returns a deliberately low iteration count for tests. Do not
// use in production.
func LightPBKDF2() PBKDF2 {
	return PBKDF2{C: 1 << 12}
}

// SaltLen returns the PBKDF2 salt size.
func (PBKDF2) SaltLen() int {
	return saltLen
}

// DeriveKey fills buf with a PBKDF2-derived key.
func (p PBKDF2) DeriveKey(buf, password, salt []byte) error {
	if p.C <= 0 {
		return errors.New("keystore: PBKDF2 iteration count must be positive")
	}
	dk := pbkdf2.Key(password, salt, p.C, len(buf), sha256.New)
	copy(buf, dk)
	memguard.WipeBytes(dk)
	return nil
}

// aes128CTR is AES-128 in counter mode, without authentication.
type aes128CTR struct{}

func (aes128CTR) KeyLen() int   { return 16 }
func (aes128CTR) NonceLen() int { return aes.BlockSize }

func (aes128CTR) Apply(dst, src, nonce, key []byte) {
	block, err := aes.NewCipher(key)
	if err != nil {
		// The key length is fixed by KeyLen; reaching this is a bug in the
		// calling container, not an input condition.
		panic(err)
	}
	cipher.NewCTR(block, nonce).XORKeyStream(dst, src)
}

// hmacSHA256 is HMAC-SHA256 with a 16-byte key, matching the keystore key
// split (16-byte encryption key + 16-byte MAC key from a 32-byte derivation).
type hmacSHA256 struct{}

func (hmacSHA256) KeyLen() int { return 16 }
func (hmacSHA256) MACLen() int { return sha256.Size }

func (hmacSHA256) Digest(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// Cipher is AES-128-CTR composed with HMAC-SHA256 via encrypt-then-MAC.
type Cipher struct {
	pwbox.CipherWithMac
}

// Compile-time interface check.
var _ pwbox.Cipher = Cipher{}

// NewCipher returns the suite's authenticated cipher.
func NewCipher() Cipher {
	return Cipher{pwbox.NewCipherWithMac(aes128CTR{}, hmacSHA256{})}
}

// Suite returns the scrypt + AES-128-CTR/HMAC-SHA256 pair under its
// canonical names, with standard scrypt parameters as the default.
func Suite() pwbox.Suite {
	return pwbox.Suite{
		KDFName: KDFName,
		NewKDF: func() pwbox.DeriveKey {
			s := DefaultScrypt()
			return &s
		},
		CipherName: CipherName,
		Cipher:     NewCipher(),
	}
}
