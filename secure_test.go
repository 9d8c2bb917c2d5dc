package pwbox

import (
	"bytes"
	"fmt"
	"testing"
)

func TestSecureDataInline(t *testing.T) {
	s := NewSecureData(32)
	if s.Len() != 32 {
		t.Errorf("Len(): got %d, want %d", s.Len(), 32)
	}
	if s.heap != nil {
		t.Error("small buffer should not allocate heap storage")
	}
	if !bytes.Equal(s.Bytes(), make([]byte, 32)) {
		t.Error("buffer is not zero-initialized")
	}
}

func TestSecureDataHeap(t *testing.T) {
	s := NewSecureData(bufferSize + 1)
	if s.Len() != bufferSize+1 {
		t.Errorf("Len(): got %d, want %d", s.Len(), bufferSize+1)
	}
	if s.heap == nil {
		t.Error("large buffer should use heap storage")
	}
	if !bytes.Equal(s.Bytes(), make([]byte, bufferSize+1)) {
		t.Error("buffer is not zero-initialized")
	}
}

func TestSecureDataDestroyWipes(t *testing.T) {
	for _, size := range []int{16, bufferSize, bufferSize * 4} {
		s := NewSecureData(size)
		b := s.Bytes()
		for i := range b {
			b[i] = 0xA5
		}

		s.Destroy()
		for i, v := range b {
			if v != 0 {
				t.Fatalf("size %d: byte %d not wiped: got %#x", size, i, v)
			}
		}

		// Destroy is idempotent.
		s.Destroy()
	}
}

func TestSecureDataWriteReadBack(t *testing.T) {
	s := NewSecureData(8)
	copy(s.Bytes(), "password")
	if string(s.Bytes()) != "password" {
		t.Errorf("Bytes(): got %q, want %q", s.Bytes(), "password")
	}
}

func TestSecureDataStringRedacted(t *testing.T) {
	s := NewSecureData(8)
	copy(s.Bytes(), "secretpw")

	got := fmt.Sprintf("%v %s", s, s)
	if bytes.Contains([]byte(got), []byte("secretpw")) {
		t.Errorf("formatted output leaks contents: %q", got)
	}
}
