package ec

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/hkdf"
)

// SharedSecret computes the ECDH shared secret between a private scalar and a
// counterpart public point. Per RFC 5903 only the x coordinate of the shared
// point is returned. The operation is symmetric:
//
//	SharedSecret(aPriv, bPub) == SharedSecret(bPriv, aPub)
//
// which is what lets a sender reopen its own envelopes.
func SharedSecret(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) []byte {
	return secp256k1.GenerateSharedSecret(priv, pub)
}

// MessageKey derives the per-message symmetric key from an ECDH shared
// secret, a transmitted nonce, and a domain-separation context. The
// derivation is HKDF-SHA-256 with the nonce as salt and
//
//	info = EnvelopeContext || context_length (4 bytes BE) || context
//
// so envelopes sealed for different purposes (orders, grants) can never be
// confused even under the same key pair and nonce. Identical inputs always
// yield identical keys; there is no internal randomness.
func MessageKey(sharedSecret, nonce []byte, context string) ([]byte, error) {
	if len(sharedSecret) != SharedSecretSize {
		return nil, ErrInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceSize
	}

	ctx := []byte(context)
	ctxLen := make([]byte, 4)
	binary.BigEndian.PutUint32(ctxLen, uint32(len(ctx)))

	info := make([]byte, 0, len(EnvelopeContext)+4+len(ctx))
	info = append(info, EnvelopeContext...)
	info = append(info, ctxLen...)
	info = append(info, ctx...)

	reader := hkdf.New(sha256.New, sharedSecret, nonce, info)
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive message key: %w", err)
	}
	return key, nil
}

// DeriveKey derives a key of the requested length using HKDF-SHA-256.
//
// Parameters:
//   - secret: the input key material
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha256.Size)
	}

	reader := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
