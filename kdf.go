package pwbox

// DeriveKey is a key derivation function (KDF) with a fixed set of
// difficulty parameters. Parameter variation is modeled as different values,
// not different types: one DeriveKey value corresponds to one parameter set.
//
// Implementations that should work with an Eraser must additionally be
// (de)serializable by the Eraser's codec (JSON by default), with the
// parameter fields exported and tagged.
type DeriveKey interface {
	// SaltLen returns the byte size of salt supplied to the KDF.
	SaltLen() int

	// DeriveKey fills buf with a key derived from the password and salt,
	// writing exactly len(buf) bytes. When invoked by a PwBox, salt is
	// guaranteed to have length SaltLen(). A failure (invalid parameters,
	// resource exhaustion) is reported as a KDF-specific error; PwBox wraps
	// it in ErrDeriveKey.
	DeriveKey(buf, password, salt []byte) error
}
