package pwbox

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/awnumar/memguard"
)

// PwBox is password-encrypted data together with the algorithms that
// produced it. It is immutable after creation and can be opened any number
// of times.
//
// A PwBox holds its KDF and cipher behind the DeriveKey and Cipher
// interfaces, so the same container works whether the algorithms were chosen
// at compile time (Seal, Suite.Seal) or constructed by name at runtime
// (Eraser.Restore).
type PwBox struct {
	salt      []byte
	nonce     []byte
	encrypted CipherOutput
	kdf       DeriveKey
	cipher    Cipher
}

// Option configures a seal operation.
type Option func(*sealConfig)

type sealConfig struct {
	rand io.Reader
	kdf  DeriveKey
}

// WithRand sets the random source used to draw the salt and nonce.
// It defaults to crypto/rand.Reader and must be cryptographically secure.
func WithRand(r io.Reader) Option {
	return func(c *sealConfig) {
		c.rand = r
	}
}

// WithKDF overrides the suite's default KDF, e.g. to use custom difficulty
// parameters.
func WithKDF(kdf DeriveKey) Option {
	return func(c *sealConfig) {
		c.kdf = kdf
	}
}

// Seal encrypts message under a key derived from password, using the given
// KDF and authenticated cipher. A fresh salt and nonce are drawn from the
// random source on every call, so sealing the same message twice yields
// different boxes.
func Seal(kdf DeriveKey, cipher Cipher, password, message []byte, opts ...Option) (*PwBox, error) {
	cfg := sealConfig{rand: rand.Reader, kdf: kdf}
	for _, opt := range opts {
		opt(&cfg)
	}
	box, err := seal(cfg.kdf, cipher, cfg.rand, password, message)
	recordSeal(err)
	return box, err
}

func seal(kdf DeriveKey, cipher Cipher, rnd io.Reader, password, message []byte) (*PwBox, error) {
	salt := make([]byte, kdf.SaltLen())
	if _, err := io.ReadFull(rnd, salt); err != nil {
		return nil, fmt.Errorf("pwbox: failed to generate salt: %w", err)
	}
	nonce := make([]byte, cipher.NonceLen())
	if _, err := io.ReadFull(rnd, nonce); err != nil {
		return nil, fmt.Errorf("pwbox: failed to generate nonce: %w", err)
	}

	key := NewSecureData(cipher.KeyLen())
	defer key.Destroy()

	start := time.Now()
	if err := kdf.DeriveKey(key.Bytes(), password, salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeriveKey, err)
	}
	recordKDF(start)

	return &PwBox{
		salt:      salt,
		nonce:     nonce,
		encrypted: *cipher.Seal(message, nonce, key.Bytes()),
		kdf:       kdf,
		cipher:    cipher,
	}, nil
}

// Len returns the byte size of the encrypted data stored in the box, which
// equals the size of the original message.
func (b *PwBox) Len() int {
	return len(b.encrypted.Ciphertext)
}

// Open decrypts the box and returns its contents. The returned buffer is
// owned by the caller, who should defer Destroy on it.
//
// An incorrect password and a corrupted box both yield ErrMACMismatch; the
// two are deliberately indistinguishable.
func (b *PwBox) Open(password []byte) (*SecureData, error) {
	output := NewSecureData(b.Len())
	if err := b.OpenInto(output.Bytes(), password); err != nil {
		output.Destroy()
		return nil, err
	}
	return output, nil
}

// OpenInto decrypts the box into the provided buffer. Prefer this over Open
// when the destination already implements its own zeroing discipline.
//
// output must have length Len(); any other length is a caller bug and
// panics rather than returning an error.
func (b *PwBox) OpenInto(output, password []byte) error {
	if len(output) != b.Len() {
		panic("pwbox: output length must equal PwBox.Len()")
	}
	err := b.openInto(output, password)
	recordOpen(err)
	return err
}

func (b *PwBox) openInto(output, password []byte) error {
	key := NewSecureData(b.cipher.KeyLen())
	defer key.Destroy()

	start := time.Now()
	if err := b.kdf.DeriveKey(key.Bytes(), password, b.salt); err != nil {
		return fmt.Errorf("%w: %w", ErrDeriveKey, err)
	}
	recordKDF(start)

	if err := b.cipher.Open(output, &b.encrypted, b.nonce, key.Bytes()); err != nil {
		// No partial plaintext survives a failed open, and cipher-specific
		// failure detail is discarded: the caller learns only that
		// authentication failed, never why.
		memguard.WipeBytes(output)
		return ErrMACMismatch
	}
	return nil
}

// Suite is a matched KDF and cipher pair under the canonical names used for
// serialization. Suite bundles are provided by the nacl, keystore and
// xchacha subpackages.
type Suite struct {
	// KDFName is the canonical registered name of the KDF.
	KDFName string

	// NewKDF returns a fresh KDF instance with default difficulty
	// parameters. The instance also serves as the decoding prototype when a
	// serialized box is restored.
	NewKDF func() DeriveKey

	// CipherName is the canonical registered name of the cipher.
	CipherName string

	// Cipher is the suite's authenticated cipher. Ciphers are stateless, so
	// a single value is shared.
	Cipher Cipher
}

// Seal encrypts message under a key derived from password using the suite's
// default KDF parameters. Use WithKDF to supply custom parameters.
func (s Suite) Seal(password, message []byte, opts ...Option) (*PwBox, error) {
	return Seal(s.NewKDF(), s.Cipher, password, message, opts...)
}
