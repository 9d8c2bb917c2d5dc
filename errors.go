package pwbox

import "errors"

var (
	// ErrNoKDF is returned when a KDF with the requested name is not
	// registered. Register it with Eraser.AddKDF or Eraser.AddSuite.
	ErrNoKDF = errors.New("pwbox: unknown KDF")

	// ErrNoCipher is returned when a cipher with the requested name is not
	// registered. Register it with Eraser.AddCipher or Eraser.AddSuite.
	ErrNoCipher = errors.New("pwbox: unknown cipher")

	// ErrKDFParams is returned when serialized KDF parameters cannot be
	// parsed.
	ErrKDFParams = errors.New("pwbox: invalid KDF parameters")

	// ErrSaltLen is returned when a record's salt length does not match the
	// named KDF. This usually means the box is corrupted.
	ErrSaltLen = errors.New("pwbox: incorrect salt length")

	// ErrNonceLen is returned when a record's nonce length does not match
	// the named cipher. This usually means the box is corrupted.
	ErrNonceLen = errors.New("pwbox: incorrect nonce length")

	// ErrMACLen is returned when a record's MAC length does not match the
	// named cipher. This usually means the box is corrupted.
	ErrMACLen = errors.New("pwbox: incorrect MAC length")

	// ErrMACMismatch is returned when MAC verification fails during open.
	// Either the supplied password is incorrect or the box is corrupted;
	// the two cases are deliberately indistinguishable.
	ErrMACMismatch = errors.New("pwbox: incorrect password or corrupted box")

	// ErrDeriveKey is returned when the KDF itself fails, e.g. due to
	// invalid difficulty parameters or resource exhaustion. The backend
	// cause is wrapped.
	ErrDeriveKey = errors.New("pwbox: key derivation failed")
)

// IsAuthFailure returns true if the error is or wraps ErrMACMismatch.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrMACMismatch)
}

// IsCorrupted returns true if the error indicates a structurally corrupted
// box: a salt, nonce or MAC length that does not match the named algorithms.
func IsCorrupted(err error) bool {
	return errors.Is(err, ErrSaltLen) || errors.Is(err, ErrNonceLen) || errors.Is(err, ErrMACLen)
}

// IsUnregistered returns true if the error is or wraps ErrNoKDF or
// ErrNoCipher.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrNoKDF) || errors.Is(err, ErrNoCipher)
}
