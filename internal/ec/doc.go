// Package ec provides the cryptographic primitives for the Driftmarket
// envelope and access-grant protocol.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - secp256k1 ECDH (RFC 5903): Diffie-Hellman key agreement between a
//     private scalar and a counterpart public point. The shared secret is
//     the 32-byte x coordinate of the resulting point.
//
//   - HKDF-SHA-256 (RFC 5869): Derives per-message symmetric keys from the
//     ECDH shared secret, a transmitted nonce, and a domain-separation
//     context string.
//
//   - XChaCha20-Poly1305: Authenticated encryption with a 24-byte nonce.
//     The extended nonce doubles as the HKDF salt, so the same transmitted
//     value drives both key derivation and encryption.
//
//   - Argon2id (RFC 9106): Memory-hard password stretching for the backup
//     vault wrapping key.
//
// # Determinism
//
// Every derivation in this package is a pure function of its inputs. The
// per-message key depends only on the two long-term keys, the nonce, and the
// context string, so a sender can recompute it at any time without having
// stored ephemeral material. Randomness enters the protocol solely through
// nonce and salt generation at seal time.
//
// # Key Encoding
//
// Private keys are 32-byte reduced, nonzero scalars; the WIF helpers encode
// them as Base58Check strings for import/export. Public keys use SEC1
// encoding, 33 bytes compressed or 65 bytes uncompressed.
package ec
