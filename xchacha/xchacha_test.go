package xchacha

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rbaliyan/pwbox"
)

func lightSeal(t *testing.T, password, message []byte) *pwbox.PwBox {
	t.Helper()
	box, err := Suite().Seal(password, message, pwbox.WithKDF(Light()))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return box
}

func TestArgon2DeriveKey(t *testing.T) {
	kdf := Light()
	salt := make([]byte, kdf.SaltLen())
	for i := range salt {
		salt[i] = byte(i)
	}

	a := make([]byte, 32)
	if err := kdf.DeriveKey(a, []byte("password"), salt); err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}

	b := make([]byte, 32)
	if err := kdf.DeriveKey(b, []byte("password"), salt); err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("DeriveKey is not deterministic")
	}

	if err := kdf.DeriveKey(b, []byte("other"), salt); err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("different passwords derived the same key")
	}
}

func TestArgon2InvalidParams(t *testing.T) {
	buf := make([]byte, 32)
	salt := make([]byte, saltLen)

	for _, kdf := range []Argon2{{Time: 0, Memory: 64, Threads: 1}, {Time: 1, Memory: 64, Threads: 0}} {
		if err := kdf.DeriveKey(buf, []byte("p"), salt); err == nil {
			t.Errorf("DeriveKey accepted %+v", kdf)
		}
	}
}

func TestCipherLengths(t *testing.T) {
	c := Cipher{}
	if c.KeyLen() != 32 || c.NonceLen() != 24 || c.MACLen() != 16 {
		t.Errorf("lengths: key %d, nonce %d, mac %d", c.KeyLen(), c.NonceLen(), c.MACLen())
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

func TestTamperedBox(t *testing.T) {
	box := lightSeal(t, []byte("pass"), []byte("payload"))

	eraser := pwbox.NewEraser().AddSuite(Suite())
	erased, err := eraser.Erase(box)
	if err != nil {
		t.Fatalf("Erase: %v", err)
	}
	erased.Ciphertext[0] ^= 0x01

	restored, err := eraser.Restore(erased)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, err := restored.Open([]byte("pass")); !pwbox.IsAuthFailure(err) {
		t.Errorf("Open tampered box: got %v", err)
	}
}

func TestEraseRestore(t *testing.T) {
	box := lightSeal(t, []byte("pass"), []byte("payload"))

	eraser := pwbox.NewEraser().AddSuite(Suite())
	erased, err := eraser.Erase(box)
	if err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if erased.KDF.Name != KDFName || erased.Cipher.Name != CipherName {
		t.Errorf("names: got %q/%q", erased.KDF.Name, erased.Cipher.Name)
	}

	// Custom parameters survive the trip.
	params, ok := erased.KDF.Params.(map[string]any)
	if !ok || params["memory"] != float64(Light().Memory) {
		t.Errorf("params: got %#v", erased.KDF.Params)
	}

	data, err := json.Marshal(erased)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var record pwbox.ErasedPwBox
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	restored, err := eraser.Restore(&record)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err := restored.Open([]byte("pass"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer got.Destroy()
	if string(got.Bytes()) != "payload" {
		t.Errorf("Open: got %q", got.Bytes())
	}
}
