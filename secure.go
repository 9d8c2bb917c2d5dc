package pwbox

import (
	"github.com/awnumar/memguard"
)

// bufferSize is the expected upper bound on byte buffers created during
// encryption and decryption. Buffers up to this size live inside the
// SecureData allocation itself instead of a separately reusable heap block.
const bufferSize = 256

// SecureData is an owned byte buffer that is overwritten with zeros before
// its memory is released. It holds derived keys and decrypted plaintext.
//
// Callers that receive a SecureData (e.g. from PwBox.Open) should defer
// Destroy so the wipe runs on every exit path. Destroy is idempotent.
type SecureData struct {
	inline    [bufferSize]byte
	heap      []byte
	n         int
	destroyed bool
}

// NewSecureData allocates a zero-initialized secure buffer of n bytes.
func NewSecureData(n int) *SecureData {
	s := &SecureData{n: n}
	if n > bufferSize {
		s.heap = make([]byte, n)
	}
	return s
}

// Bytes returns the buffer contents for in-place reads and writes.
// The slice must not be retained past Destroy.
func (s *SecureData) Bytes() []byte {
	if s.heap != nil {
		return s.heap[:s.n]
	}
	return s.inline[:s.n]
}

// Len returns the byte size of the buffer.
func (s *SecureData) Len() int {
	return s.n
}

// Destroy wipes the buffer contents. The wipe cannot be optimized away:
// memguard.WipeBytes performs writes the compiler must preserve.
func (s *SecureData) Destroy() {
	if s.destroyed {
		return
	}
	memguard.WipeBytes(s.inline[:])
	if s.heap != nil {
		memguard.WipeBytes(s.heap)
	}
	s.destroyed = true
}

// String returns a redacted placeholder so secrets cannot leak through
// logging or %v formatting.
func (s *SecureData) String() string {
	return "SecureData(***)"
}
