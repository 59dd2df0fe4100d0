package driftmarket

import (
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/driftmarket/crypto-go/internal/ec"
)

// PublicKey is a point on the secp256k1 curve, the shareable half of a
// key pair. The zero value is not usable; obtain one from [ParsePublicKey]
// or [KeyPair.Public].
type PublicKey struct {
	point *secp256k1.PublicKey
}

// ParsePublicKey decodes a SEC1-encoded public key, 33 bytes compressed or
// 65 bytes uncompressed. Points not on the curve fail with
// ErrInvalidKeyMaterial.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	point, err := ec.ParsePublicKey(b)
	if err != nil {
		return nil, wrapKeyError(err, "publicKey")
	}
	return &PublicKey{point: point}, nil
}

// Bytes returns the 33-byte compressed SEC1 encoding.
func (p *PublicKey) Bytes() []byte {
	return p.point.SerializeCompressed()
}

// BytesUncompressed returns the 65-byte uncompressed SEC1 encoding.
func (p *PublicKey) BytesUncompressed() []byte {
	return p.point.SerializeUncompressed()
}

// Equal reports whether two public keys are the same point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.point.IsEqual(other.point)
}

// KeyPair holds a user's secp256k1 private scalar and its public point.
// Private key bytes live only in transient memory; call [KeyPair.Zero] when
// the pair is no longer needed.
type KeyPair struct {
	priv *secp256k1.PrivateKey
	pub  *PublicKey
}

// GenerateKeyPair creates a fresh random key pair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := ec.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return newKeyPair(priv), nil
}

// KeyPairFromBytes builds a key pair from a raw 32-byte private scalar,
// deriving the public point. Malformed scalars fail with
// ErrInvalidKeyMaterial.
func KeyPairFromBytes(priv []byte) (*KeyPair, error) {
	parsed, err := ec.ParsePrivateKey(priv)
	if err != nil {
		return nil, wrapKeyError(err, "privateKey")
	}
	return newKeyPair(parsed), nil
}

// KeyPairFromWIF builds a key pair from a WIF-encoded private key, the form
// users paste at login or import. Malformed strings fail with
// ErrInvalidKeyMaterial.
func KeyPairFromWIF(wif string) (*KeyPair, error) {
	parsed, err := ec.DecodeWIF(wif)
	if err != nil {
		return nil, wrapKeyError(err, "wif")
	}
	return newKeyPair(parsed), nil
}

func newKeyPair(priv *secp256k1.PrivateKey) *KeyPair {
	return &KeyPair{
		priv: priv,
		pub:  &PublicKey{point: priv.PubKey()},
	}
}

// Public returns the shareable public half.
func (kp *KeyPair) Public() *PublicKey {
	return kp.pub
}

// Bytes returns a copy of the raw 32-byte private scalar.
func (kp *KeyPair) Bytes() []byte {
	return kp.priv.Serialize()
}

// WIF returns the WIF encoding of the private key.
func (kp *KeyPair) WIF() string {
	return ec.EncodeWIF(kp.priv)
}

// Zero scrubs the private scalar from memory. The pair must not be used
// afterwards.
func (kp *KeyPair) Zero() {
	if kp.priv != nil {
		kp.priv.Zero()
	}
}
