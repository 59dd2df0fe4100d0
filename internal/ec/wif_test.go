package ec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
)

func TestWIF_RoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	wif := EncodeWIF(priv)
	if wif == "" {
		t.Fatal("EncodeWIF() returned empty string")
	}

	decoded, err := DecodeWIF(wif)
	if err != nil {
		t.Fatalf("DecodeWIF() error = %v", err)
	}
	if !bytes.Equal(decoded.Serialize(), priv.Serialize()) {
		t.Error("DecodeWIF() does not round-trip the private key")
	}
}

func TestDecodeWIF_Malformed(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	valid := EncodeWIF(priv)

	// Corrupt the checksum by re-encoding with the last payload byte flipped.
	raw, err := base58.Decode(valid)
	if err != nil {
		t.Fatalf("base58.Decode() error = %v", err)
	}
	raw[len(raw)-1] ^= 0x01
	badChecksum := base58.Encode(raw)

	tests := []struct {
		name string
		wif  string
	}{
		{"empty", ""},
		{"not base58", "0OIl+/"},
		{"truncated", valid[:len(valid)-5]},
		{"bad checksum", badChecksum},
		{"wrong payload size", base58.Encode([]byte{wifVersion, 1, 2, 3})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeWIF(tt.wif); !errors.Is(err, ErrMalformedWIF) {
				t.Errorf("DecodeWIF() error = %v, want %v", err, ErrMalformedWIF)
			}
		})
	}
}

func TestDecodeWIF_WrongVersion(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	payload := append([]byte{0x42}, priv.Serialize()...)
	payload = append(payload, wifCompressedSuffix)
	payload = append(payload, wifChecksum(payload)...)

	if _, err := DecodeWIF(base58.Encode(payload)); !errors.Is(err, ErrMalformedWIF) {
		t.Errorf("DecodeWIF() error = %v, want %v", err, ErrMalformedWIF)
	}
}

func TestDecodeWIF_ZeroScalar(t *testing.T) {
	payload := append([]byte{wifVersion}, make([]byte, PrivateKeySize)...)
	payload = append(payload, wifCompressedSuffix)
	payload = append(payload, wifChecksum(payload)...)

	if _, err := DecodeWIF(base58.Encode(payload)); !errors.Is(err, ErrInvalidScalar) {
		t.Errorf("DecodeWIF() error = %v, want %v", err, ErrInvalidScalar)
	}
}

func TestDecodeWIF_LegacyUncompressedForm(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	// Legacy WIF without the compressed suffix.
	payload := append([]byte{wifVersion}, priv.Serialize()...)
	payload = append(payload, wifChecksum(payload)...)

	decoded, err := DecodeWIF(base58.Encode(payload))
	if err != nil {
		t.Fatalf("DecodeWIF() error = %v", err)
	}
	if !bytes.Equal(decoded.Serialize(), priv.Serialize()) {
		t.Error("legacy WIF form does not round-trip")
	}
}

func TestEncodeWIF_Prefix(t *testing.T) {
	priv, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}

	// Version byte 0x80 with a compressed suffix always yields a K or L prefix.
	wif := EncodeWIF(priv)
	if !strings.HasPrefix(wif, "K") && !strings.HasPrefix(wif, "L") {
		t.Errorf("EncodeWIF() = %q, want K... or L... prefix", wif)
	}
}
