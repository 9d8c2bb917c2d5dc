package keystore

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rbaliyan/pwbox"
)

func lightSeal(t *testing.T, password, message []byte) *pwbox.PwBox {
	t.Helper()
	box, err := Suite().Seal(password, message, pwbox.WithKDF(LightScrypt()))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return box
}

func TestCipherLengths(t *testing.T) {
	c := NewCipher()
	// 16-byte AES key + 16-byte MAC key from a 32-byte derivation.
	if c.KeyLen() != 32 {
		t.Errorf("KeyLen(): got %d, want 32", c.KeyLen())
	}
	if c.NonceLen() != 16 {
		t.Errorf("NonceLen(): got %d, want 16", c.NonceLen())
	}
	if c.MACLen() != 32 {
		t.Errorf("MACLen(): got %d, want 32", c.MACLen())
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	box := lightSeal(t, []byte("correct horse"), []byte("battery staple"))
	if box.Len() != 14 {
		t.Errorf("Len(): got %d, want 14", box.Len())
	}

	got, err := box.Open([]byte("correct horse"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer got.Destroy()
	if string(got.Bytes()) != "battery staple" {
		t.Errorf("Open: got %q, want %q", got.Bytes(), "battery staple")
	}

	if _, err := box.Open([]byte("wrong")); !pwbox.IsAuthFailure(err) {
		t.Errorf("Open with wrong password: got %v", err)
	}
}

func TestPBKDF2(t *testing.T) {
	kdf := LightPBKDF2()
	salt := make([]byte, kdf.SaltLen())
	for i := range salt {
		salt[i] = byte(i)
	}

	a := make([]byte, 32)
	if err := kdf.DeriveKey(a, []byte("password"), salt); err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}

	b := make([]byte, 32)
	if err := kdf.DeriveKey(b, []byte("other password"), salt); err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("different passwords derived the same key")
	}

	bad := PBKDF2{C: 0}
	if err := bad.DeriveKey(a, []byte("p"), salt); err == nil {
		t.Error("DeriveKey accepted a zero iteration count")
	}
}

func TestPBKDF2Seal(t *testing.T) {
	box, err := pwbox.Seal(LightPBKDF2(), NewCipher(), []byte("pass"), []byte("payload"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := box.Open([]byte("pass"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer got.Destroy()
	if string(got.Bytes()) != "payload" {
		t.Errorf("Open: got %q", got.Bytes())
	}
}

func TestEraseRestoreBothKDFs(t *testing.T) {
	eraser := pwbox.NewEraser().
		AddSuite(Suite()).
		AddKDF(PBKDF2Name, func() pwbox.DeriveKey {
			p := DefaultPBKDF2()
			return &p
		})

	boxes := map[string]*pwbox.PwBox{}
	var err error
	boxes[KDFName], err = pwbox.Seal(LightScrypt(), NewCipher(), []byte("pass"), []byte("payload"))
	if err != nil {
		t.Fatalf("Seal scrypt: %v", err)
	}
	boxes[PBKDF2Name], err = pwbox.Seal(LightPBKDF2(), NewCipher(), []byte("pass"), []byte("payload"))
	if err != nil {
		t.Fatalf("Seal pbkdf2: %v", err)
	}

	for wantName, box := range boxes {
		erased, err := eraser.Erase(box)
		if err != nil {
			t.Fatalf("%s: Erase: %v", wantName, err)
		}
		if erased.KDF.Name != wantName {
			t.Errorf("KDF name: got %q, want %q", erased.KDF.Name, wantName)
		}

		data, err := json.Marshal(erased)
		if err != nil {
			t.Fatalf("%s: Marshal: %v", wantName, err)
		}
		var record pwbox.ErasedPwBox
		if err := json.Unmarshal(data, &record); err != nil {
			t.Fatalf("%s: Unmarshal: %v", wantName, err)
		}

		restored, err := eraser.Restore(&record)
		if err != nil {
			t.Fatalf("%s: Restore: %v", wantName, err)
		}
		got, err := restored.Open([]byte("pass"))
		if err != nil {
			t.Fatalf("%s: Open: %v", wantName, err)
		}
		if string(got.Bytes()) != "payload" {
			t.Errorf("%s: Open: got %q", wantName, got.Bytes())
		}
		got.Destroy()
	}
}
