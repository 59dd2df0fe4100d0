package ec

import (
	"bytes"
	"errors"
	"testing"
)

func TestGeneratePrivateKey(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	if len(priv.Serialize()) != PrivateKeySize {
		t.Errorf("private key size = %d, want %d", len(priv.Serialize()), PrivateKeySize)
	}

	pub := DerivePublicKey(priv)
	if len(pub.SerializeCompressed()) != CompressedPubKeySize {
		t.Errorf("compressed public key size = %d, want %d", len(pub.SerializeCompressed()), CompressedPubKeySize)
	}
	if len(pub.SerializeUncompressed()) != UncompressedPubKeySize {
		t.Errorf("uncompressed public key size = %d, want %d", len(pub.SerializeUncompressed()), UncompressedPubKeySize)
	}
}

func TestGeneratePrivateKey_Uniqueness(t *testing.T) {
	a, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	b, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	if bytes.Equal(a.Serialize(), b.Serialize()) {
		t.Error("generated private keys are identical")
	}
}

func TestParsePrivateKey_RoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	parsed, err := ParsePrivateKey(priv.Serialize())
	if err != nil {
		t.Fatalf("ParsePrivateKey() error = %v", err)
	}

	if !bytes.Equal(parsed.Serialize(), priv.Serialize()) {
		t.Error("parsed private key does not match original")
	}
	if !parsed.PubKey().IsEqual(priv.PubKey()) {
		t.Error("parsed private key derives a different public key")
	}
}

func TestParsePrivateKey_Invalid(t *testing.T) {
	// The group order N, which is not a reduced scalar.
	groupOrder := []byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
		0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
		0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
	}

	tests := []struct {
		name    string
		key     []byte
		wantErr error
	}{
		{"empty", []byte{}, ErrInvalidScalarSize},
		{"too short", make([]byte, PrivateKeySize-1), ErrInvalidScalarSize},
		{"too long", make([]byte, PrivateKeySize+1), ErrInvalidScalarSize},
		{"zero scalar", make([]byte, PrivateKeySize), ErrInvalidScalar},
		{"group order", groupOrder, ErrInvalidScalar},
		{"all ones", bytes.Repeat([]byte{0xff}, PrivateKeySize), ErrInvalidScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePrivateKey(tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePrivateKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePublicKey(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	pub := priv.PubKey()

	t.Run("compressed", func(t *testing.T) {
		parsed, err := ParsePublicKey(pub.SerializeCompressed())
		if err != nil {
			t.Fatalf("ParsePublicKey() error = %v", err)
		}
		if !parsed.IsEqual(pub) {
			t.Error("parsed compressed point does not match original")
		}
	})

	t.Run("uncompressed", func(t *testing.T) {
		parsed, err := ParsePublicKey(pub.SerializeUncompressed())
		if err != nil {
			t.Fatalf("ParsePublicKey() error = %v", err)
		}
		if !parsed.IsEqual(pub) {
			t.Error("parsed uncompressed point does not match original")
		}
	})
}

func TestParsePublicKey_Invalid(t *testing.T) {
	offCurve := make([]byte, CompressedPubKeySize)
	offCurve[0] = 0x02 // valid prefix, x = 0 is not on the curve

	tests := []struct {
		name    string
		point   []byte
		wantErr error
	}{
		{"empty", []byte{}, ErrInvalidPointSize},
		{"wrong size", make([]byte, 32), ErrInvalidPointSize},
		{"bad prefix", append([]byte{0x07}, make([]byte, 32)...), ErrInvalidPoint},
		{"off curve", offCurve, ErrInvalidPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePublicKey(tt.point)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePublicKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestZeroBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	ZeroBytes(b)
	if !bytes.Equal(b, make([]byte, 4)) {
		t.Errorf("ZeroBytes() left %v", b)
	}
}

func BenchmarkGeneratePrivateKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GeneratePrivateKey(); err != nil {
			b.Fatal(err)
		}
	}
}
