package ec

import "golang.org/x/crypto/chacha20poly1305"

const (
	// PrivateKeySize is the size of a secp256k1 private scalar in bytes.
	PrivateKeySize = 32
	// CompressedPubKeySize is the size of a SEC1 compressed public point.
	CompressedPubKeySize = 33
	// UncompressedPubKeySize is the size of a SEC1 uncompressed public point.
	UncompressedPubKeySize = 65
	// SharedSecretSize is the size of an ECDH shared secret (x coordinate).
	SharedSecretSize = 32

	// KeySize is the size of a derived symmetric key in bytes.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the size of an envelope nonce in bytes. XChaCha20's
	// extended nonce matches the protocol's fixed 24-byte nonce.
	NonceSize = chacha20poly1305.NonceSizeX
	// TagSize is the size of the Poly1305 authentication tag in bytes.
	TagSize = chacha20poly1305.Overhead

	// SaltSize is the size of a vault KDF salt in bytes.
	SaltSize = 16

	// wifVersion is the Base58Check version byte for WIF private keys.
	wifVersion = 0x80
	// wifCompressedSuffix marks a WIF key whose public point serializes
	// compressed.
	wifCompressedSuffix = 0x01
	// wifChecksumSize is the size of the Base58Check checksum in bytes.
	wifChecksumSize = 4
)

// EnvelopeContext is the domain-separation context for HKDF key derivation
// in the envelope codec.
const EnvelopeContext = "driftmarket:envelope:v1"
