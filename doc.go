// Package pwbox provides a container for password-based encryption.
//
// A PwBox derives a symmetric key from a password using a pluggable key
// derivation function (DeriveKey) and protects a message with a pluggable
// authenticated cipher (Cipher). Authenticated ciphers can additionally be
// composed from an unauthenticated cipher and a message authentication code
// via CipherWithMac.
//
// Matched KDF+cipher pairs are bundled as suites in subpackages:
//
//   - nacl: scrypt + XSalsa20-Poly1305 (libsodium-flavoured)
//   - keystore: scrypt or PBKDF2 + AES-128-CTR/HMAC-SHA256 (Ethereum
//     keystore-flavoured)
//   - xchacha: Argon2id + XChaCha20-Poly1305
//
// An Eraser converts boxes to and from ErasedPwBox, a self-describing record
// that serializes through any structured format (JSON, YAML, TOML) and names
// its algorithms, so a box can be restored without knowing its algorithms at
// compile time.
//
// Basic usage:
//
//	box, err := xchacha.Suite().Seal([]byte("correct horse"), []byte("battery staple"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eraser := pwbox.NewEraser().AddSuite(xchacha.Suite())
//	erased, err := eraser.Erase(box)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := json.Marshal(erased) // persist anywhere
//
//	// Later, possibly in another process:
//	var record pwbox.ErasedPwBox
//	_ = json.Unmarshal(data, &record)
//	restored, err := eraser.Restore(&record)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plaintext, err := restored.Open([]byte("correct horse"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer plaintext.Destroy()
//
// The name combines two libsodium families: pwhash for password-based KDFs
// and *box for ciphers.
package pwbox
