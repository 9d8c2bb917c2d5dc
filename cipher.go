package pwbox

// Cipher is an authenticated symmetric cipher.
//
// Implementations must verify the MAC in constant time with respect to
// secret key material, and must not reveal whether an open failure was
// caused by ciphertext or MAC corruption.
type Cipher interface {
	// KeyLen returns the byte size of a key.
	KeyLen() int

	// NonceLen returns the byte size of a nonce (aka initialization vector).
	NonceLen() int

	// MACLen returns the byte size of a message authentication code.
	MACLen() int

	// Seal encrypts message with the provided key and nonce. When invoked
	// by a PwBox, key and nonce are guaranteed to have correct sizes.
	Seal(message, nonce, key []byte) *CipherOutput

	// Open decrypts enc with the provided key and nonce into output, which
	// has length len(enc.Ciphertext). If the MAC does not verify, Open
	// returns ErrMACMismatch and leaves no plaintext behind.
	Open(output []byte, enc *CipherOutput, nonce, key []byte) error
}

// CipherOutput is the output of a Cipher.
type CipherOutput struct {
	// Ciphertext is the encrypted data. It has the same size as the
	// original message.
	Ciphertext []byte

	// MAC is the message authentication code for the ciphertext.
	MAC []byte
}
