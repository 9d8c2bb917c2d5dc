package pwbox

import "encoding/hex"

// HexBytes is a byte slice that serializes as a hexadecimal string in text
// formats. It implements encoding.TextMarshaler and TextUnmarshaler, so an
// ErasedPwBox round-trips through JSON, YAML and TOML without loss.
type HexBytes []byte

// MarshalText encodes the bytes as lowercase hexadecimal.
func (h HexBytes) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(out, h)
	return out, nil
}

// UnmarshalText decodes a hexadecimal string.
func (h *HexBytes) UnmarshalText(text []byte) error {
	out := make([]byte, hex.DecodedLen(len(text)))
	n, err := hex.Decode(out, text)
	if err != nil {
		return err
	}
	*h = out[:n]
	return nil
}
