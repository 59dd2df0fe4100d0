package ec

import (
	"crypto/rand"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// randReader is the random source used for key and nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// GeneratePrivateKey creates a fresh secp256k1 private key.
func GeneratePrivateKey() (*secp256k1.PrivateKey, error) {
	if randReader != nil {
		return secp256k1.GeneratePrivateKeyFromRand(randReader)
	}
	return secp256k1.GeneratePrivateKey()
}

// ParsePrivateKey validates b as a 32-byte, reduced, nonzero scalar and
// returns the corresponding private key. Scalars of the wrong size, scalars
// at or above the group order, and the zero scalar are rejected.
func ParsePrivateKey(b []byte) (*secp256k1.PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, ErrInvalidScalarSize
	}

	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	if overflow || s.IsZero() {
		s.Zero()
		return nil, ErrInvalidScalar
	}
	return secp256k1.NewPrivateKey(&s), nil
}

// ParsePublicKey decodes a SEC1-encoded public point. Both the 33-byte
// compressed and 65-byte uncompressed forms are accepted. Points not on the
// curve are rejected; the identity element has no SEC1 encoding and can
// therefore never parse.
func ParsePublicKey(b []byte) (*secp256k1.PublicKey, error) {
	switch len(b) {
	case CompressedPubKeySize, UncompressedPubKeySize:
	default:
		return nil, ErrInvalidPointSize
	}

	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return pub, nil
}

// DerivePublicKey computes the public point for a private scalar.
func DerivePublicKey(priv *secp256k1.PrivateKey) *secp256k1.PublicKey {
	return priv.PubKey()
}

// ReadRandom fills b from the package's random source.
func ReadRandom(b []byte) error {
	_, err := io.ReadFull(reader(), b)
	return err
}

// ZeroBytes overwrites b with zeros. Used to scrub key material from
// transient buffers.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
