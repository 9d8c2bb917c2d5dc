package pwbox

import (
	"context"
	"fmt"
	"reflect"

	"github.com/rbaliyan/config/codec"
	"github.com/rbaliyan/config/codec/json"
)

// ErasedPwBox is the serialized, self-describing form of a PwBox. Algorithms
// are identified by registered name, byte fields serialize as hexadecimal
// text, and KDF parameters are carried as a nested structured value, so the
// record survives any structured serialization format.
type ErasedPwBox struct {
	KDF        ErasedKDF    `json:"kdf"`
	Cipher     ErasedCipher `json:"cipher"`
	Salt       HexBytes     `json:"salt"`
	Nonce      HexBytes     `json:"nonce"`
	Ciphertext HexBytes     `json:"ciphertext"`
	MAC        HexBytes     `json:"mac"`
}

// ErasedKDF names a KDF and carries its algorithm-specific parameters.
type ErasedKDF struct {
	Name   string `json:"name"`
	Params any    `json:"params,omitempty"`
}

// ErasedCipher names a cipher. Ciphers have no parameters.
type ErasedCipher struct {
	Name string `json:"name"`
}

// Len returns the byte size of the encrypted data stored in the record.
func (eb *ErasedPwBox) Len() int {
	return len(eb.Ciphertext)
}

// Eraser converts PwBoxes to and from their serialized form.
//
// An Eraser is a caller-owned registry of named algorithms. Populate it with
// AddKDF, AddCipher or AddSuite during setup; after that it is read-only and
// safe for concurrent Erase and Restore calls. Registration is not
// synchronized with use.
type Eraser struct {
	codec       codec.Codec
	kdfs        map[string]func() DeriveKey
	kdfNames    map[reflect.Type]string
	ciphers     map[string]Cipher
	cipherNames map[reflect.Type]string
}

// EraserOption configures an Eraser.
type EraserOption func(*Eraser)

// WithCodec sets the codec used to (de)serialize KDF parameters. It defaults
// to JSON. The codec only shapes the intermediate parameter encoding; the
// record itself serializes with whatever format the caller applies to it.
func WithCodec(c codec.Codec) EraserOption {
	return func(e *Eraser) {
		e.codec = c
	}
}

// NewEraser creates an empty Eraser.
func NewEraser(opts ...EraserOption) *Eraser {
	e := &Eraser{
		codec:       json.New(),
		kdfs:        make(map[string]func() DeriveKey),
		kdfNames:    make(map[reflect.Type]string),
		ciphers:     make(map[string]Cipher),
		cipherNames: make(map[reflect.Type]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddKDF registers a KDF under the given name. The prototype function must
// return a pointer to a fresh instance with default parameters; Restore
// decodes serialized parameters into it. Registering a name or concrete type
// twice is a setup bug and panics.
func (e *Eraser) AddKDF(name string, prototype func() DeriveKey) *Eraser {
	if _, ok := e.kdfs[name]; ok {
		panic(fmt.Sprintf("pwbox: KDF %q is already registered", name))
	}
	typ := concreteType(prototype())
	if _, ok := e.kdfNames[typ]; ok {
		panic(fmt.Sprintf("pwbox: KDF type %s is already registered", typ))
	}
	e.kdfs[name] = prototype
	e.kdfNames[typ] = name
	return e
}

// AddCipher registers a cipher under the given name. Registering a name or
// concrete type twice is a setup bug and panics.
func (e *Eraser) AddCipher(name string, cipher Cipher) *Eraser {
	if _, ok := e.ciphers[name]; ok {
		panic(fmt.Sprintf("pwbox: cipher %q is already registered", name))
	}
	typ := concreteType(cipher)
	if _, ok := e.cipherNames[typ]; ok {
		panic(fmt.Sprintf("pwbox: cipher type %s is already registered", typ))
	}
	e.ciphers[name] = cipher
	e.cipherNames[typ] = name
	return e
}

// AddSuite registers a suite's KDF and cipher under their canonical names.
func (e *Eraser) AddSuite(s Suite) *Eraser {
	return e.AddKDF(s.KDFName, s.NewKDF).AddCipher(s.CipherName, s.Cipher)
}

// Erase converts a box into its serialized form. The box's concrete KDF and
// cipher types must have been registered; a missing registration is a common
// integration bug and is reported as ErrNoKDF or ErrNoCipher, not a panic.
func (e *Eraser) Erase(b *PwBox) (*ErasedPwBox, error) {
	kdfName, ok := e.kdfNames[concreteType(b.kdf)]
	if !ok {
		return nil, fmt.Errorf("%w: type %T is not registered", ErrNoKDF, b.kdf)
	}
	cipherName, ok := e.cipherNames[concreteType(b.cipher)]
	if !ok {
		return nil, fmt.Errorf("%w: type %T is not registered", ErrNoCipher, b.cipher)
	}

	params, err := e.encodeParams(b.kdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKDFParams, err)
	}

	return &ErasedPwBox{
		KDF:        ErasedKDF{Name: kdfName, Params: params},
		Cipher:     ErasedCipher{Name: cipherName},
		Salt:       append(HexBytes(nil), b.salt...),
		Nonce:      append(HexBytes(nil), b.nonce...),
		Ciphertext: append(HexBytes(nil), b.encrypted.Ciphertext...),
		MAC:        append(HexBytes(nil), b.encrypted.MAC...),
	}, nil
}

// Restore converts a serialized record back into an openable box. The
// record's algorithm names are resolved against the registry, the KDF
// parameters are decoded, and the salt, nonce and MAC lengths are validated
// against the named algorithms before any cryptographic work is attempted.
func (e *Eraser) Restore(record *ErasedPwBox) (*PwBox, error) {
	prototype, ok := e.kdfs[record.KDF.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoKDF, record.KDF.Name)
	}
	kdf := prototype()
	if record.KDF.Params != nil {
		if err := e.decodeParams(record.KDF.Params, kdf); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKDFParams, err)
		}
	}

	cipher, ok := e.ciphers[record.Cipher.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCipher, record.Cipher.Name)
	}

	if len(record.Salt) != kdf.SaltLen() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSaltLen, len(record.Salt), kdf.SaltLen())
	}
	if len(record.Nonce) != cipher.NonceLen() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrNonceLen, len(record.Nonce), cipher.NonceLen())
	}
	if len(record.MAC) != cipher.MACLen() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMACLen, len(record.MAC), cipher.MACLen())
	}

	// Defensive copies keep the box valid if the caller mutates the record.
	return &PwBox{
		salt:  append([]byte(nil), record.Salt...),
		nonce: append([]byte(nil), record.Nonce...),
		encrypted: CipherOutput{
			Ciphertext: append([]byte(nil), record.Ciphertext...),
			MAC:        append([]byte(nil), record.MAC...),
		},
		kdf:    kdf,
		cipher: cipher,
	}, nil
}

// encodeParams converts a KDF value into a format-neutral structured value
// by passing it through the configured codec.
func (e *Eraser) encodeParams(kdf DeriveKey) (any, error) {
	ctx := context.Background()
	raw, err := e.codec.Encode(ctx, kdf)
	if err != nil {
		return nil, err
	}
	var params any
	if err := e.codec.Decode(ctx, raw, &params); err != nil {
		return nil, err
	}
	return params, nil
}

// decodeParams fills the prototype from a structured parameter value.
func (e *Eraser) decodeParams(params any, kdf DeriveKey) error {
	ctx := context.Background()
	raw, err := e.codec.Encode(ctx, params)
	if err != nil {
		return err
	}
	return e.codec.Decode(ctx, raw, kdf)
}

// concreteType canonicalizes pointer types to their element type, so a KDF
// registered via a pointer prototype matches boxes sealed with a value.
func concreteType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
