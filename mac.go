package pwbox

import "crypto/hmac"

// Mac is a message authentication code primitive.
type Mac interface {
	// KeyLen returns the byte size of a MAC key.
	KeyLen() int

	// MACLen returns the byte size of the MAC output.
	MACLen() int

	// Digest computes the MAC of message under key.
	Digest(key, message []byte) []byte
}

// UnauthenticatedCipher is a symmetric cipher without authentication.
type UnauthenticatedCipher interface {
	// KeyLen returns the byte size of a key.
	KeyLen() int

	// NonceLen returns the byte size of a nonce.
	NonceLen() int

	// Apply transforms src into dst under the given nonce and key. Stream
	// ciphers use the same transform for encryption and decryption; dst and
	// src have equal length and may overlap exactly.
	Apply(dst, src, nonce, key []byte)
}

// CipherWithMac composes an unauthenticated cipher and a MAC into an
// authenticated Cipher using encrypt-then-MAC: Seal encrypts the message and
// computes the MAC over the ciphertext; Open recomputes and compares the MAC
// in constant time before any decryption is attempted.
//
// The composed key is the concatenation of two independent sub-keys, the
// cipher key followed by the MAC key, so KeyLen is the sum of the two.
type CipherWithMac struct {
	cipher UnauthenticatedCipher
	mac    Mac
}

// Compile-time interface check.
var _ Cipher = CipherWithMac{}

// NewCipherWithMac composes cipher and mac into an authenticated cipher.
func NewCipherWithMac(cipher UnauthenticatedCipher, mac Mac) CipherWithMac {
	return CipherWithMac{cipher: cipher, mac: mac}
}

// KeyLen returns the combined key size: cipher key followed by MAC key.
func (cm CipherWithMac) KeyLen() int {
	return cm.cipher.KeyLen() + cm.mac.KeyLen()
}

// NonceLen returns the nonce size of the underlying cipher.
func (cm CipherWithMac) NonceLen() int {
	return cm.cipher.NonceLen()
}

// MACLen returns the output size of the underlying MAC.
func (cm CipherWithMac) MACLen() int {
	return cm.mac.MACLen()
}

// splitKey returns the cipher and MAC sub-keys of the combined key.
func (cm CipherWithMac) splitKey(key []byte) (cipherKey, macKey []byte) {
	n := cm.cipher.KeyLen()
	return key[:n], key[n:]
}

// Seal encrypts message and authenticates the resulting ciphertext.
func (cm CipherWithMac) Seal(message, nonce, key []byte) *CipherOutput {
	cipherKey, macKey := cm.splitKey(key)

	ciphertext := make([]byte, len(message))
	cm.cipher.Apply(ciphertext, message, nonce, cipherKey)

	return &CipherOutput{
		Ciphertext: ciphertext,
		MAC:        cm.mac.Digest(macKey, ciphertext),
	}
}

// Open verifies the MAC over the received ciphertext and, only on success,
// decrypts it into output. On mismatch it returns ErrMACMismatch without
// decrypting.
func (cm CipherWithMac) Open(output []byte, enc *CipherOutput, nonce, key []byte) error {
	cipherKey, macKey := cm.splitKey(key)

	expected := cm.mac.Digest(macKey, enc.Ciphertext)
	if !hmac.Equal(expected, enc.MAC) {
		return ErrMACMismatch
	}

	cm.cipher.Apply(output, enc.Ciphertext, nonce, cipherKey)
	return nil
}
