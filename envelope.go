package driftmarket

import (
	"encoding/json"
	"fmt"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/driftmarket/crypto-go/internal/ec"
)

// NonceSize is the fixed size of an envelope nonce in bytes.
const NonceSize = ec.NonceSize

// Envelope is one point-to-point authenticated-encrypted payload between a
// sender and a recipient. The nonce is not secret and must be stored or
// transmitted alongside the ciphertext, which includes the authentication
// tag. An envelope is immutable once created; it can be opened any number of
// times by either party because decryption is a pure function of the nonce
// and the two long-term keys.
type Envelope struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// SealOption configures envelope sealing and opening.
type SealOption func(*sealConfig)

type sealConfig struct {
	context string
}

// WithContext binds a caller context string, such as an order or feed
// identifier, into the key derivation. An envelope sealed with a context can
// only be opened with the same context.
func WithContext(context string) SealOption {
	return func(c *sealConfig) {
		c.context = context
	}
}

// Seal encrypts payload from the sender to the recipient.
//
// A fresh random 24-byte nonce is drawn for every call; the message key is
// then derived deterministically from the ECDH shared secret, the nonce, and
// the context. Nothing beyond the returned envelope needs to be persisted
// for either party to decrypt later. There is no API accepting a caller
// nonce: always generating it here is what rules out nonce reuse across
// payloads for the same pair.
func Seal(payload []byte, sender *KeyPair, recipient *PublicKey, opts ...SealOption) (*Envelope, error) {
	nonce := make([]byte, ec.NonceSize)
	if err := ec.ReadRandom(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	key, err := messageKey(sender.priv, recipient.point, nonce, opts)
	if err != nil {
		return nil, err
	}
	defer ec.ZeroBytes(key)

	ciphertext, err := ec.Seal(key, nonce, payload)
	if err != nil {
		return nil, fmt.Errorf("seal payload: %w", err)
	}

	return &Envelope{Nonce: nonce, Ciphertext: ciphertext}, nil
}

// Open decrypts the envelope on the recipient path, deriving the shared
// secret from the recipient's private key and the sender's public key. By
// the symmetry of ECDH this equals the secret the sender used at seal time.
// Fails with ErrDecryptionFailed if the authentication tag does not verify.
func (e *Envelope) Open(recipient *KeyPair, sender *PublicKey, opts ...SealOption) ([]byte, error) {
	return e.open(recipient.priv, sender.point, opts)
}

// Reopen decrypts the envelope on the sender self-check path: the sender
// recomputes the same shared secret from its own private key and the
// recipient's public key. This is what lets a buyer re-read an order payload
// it sealed for a seller without ever having stored the message key.
func (e *Envelope) Reopen(sender *KeyPair, recipient *PublicKey, opts ...SealOption) ([]byte, error) {
	return e.open(sender.priv, recipient.point, opts)
}

// OpenWithLegacyFallback tries an authenticated Open and, if the tag fails
// and the ciphertext happens to be plain JSON, returns it as-is with
// legacy=true. This exists strictly for reading records written before the
// codec; it must never be used for new writes, and callers must treat the
// legacy flag as distinct from a successful authenticated decrypt.
func (e *Envelope) OpenWithLegacyFallback(recipient *KeyPair, sender *PublicKey, opts ...SealOption) (payload []byte, legacy bool, err error) {
	payload, err = e.open(recipient.priv, sender.point, opts)
	if err == nil {
		return payload, false, nil
	}
	if !json.Valid(e.Ciphertext) {
		return nil, false, err
	}
	return e.Ciphertext, true, nil
}

// Validate checks the structural shape of a stored envelope record.
func (e *Envelope) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil envelope", ErrInvalidRecord)
	}
	if len(e.Nonce) != ec.NonceSize {
		return fmt.Errorf("%w: nonce size %d, expected %d", ErrInvalidRecord, len(e.Nonce), ec.NonceSize)
	}
	if len(e.Ciphertext) < ec.TagSize {
		return fmt.Errorf("%w: ciphertext shorter than authentication tag", ErrInvalidRecord)
	}
	return nil
}

func (e *Envelope) open(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey, opts []SealOption) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	key, err := messageKey(priv, pub, e.Nonce, opts)
	if err != nil {
		return nil, err
	}
	defer ec.ZeroBytes(key)

	payload, err := ec.Open(key, e.Nonce, e.Ciphertext)
	if err != nil {
		return nil, &DecryptionError{Stage: "aead", Err: err}
	}
	return payload, nil
}

func messageKey(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey, nonce []byte, opts []SealOption) ([]byte, error) {
	var cfg sealConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	shared := ec.SharedSecret(priv, pub)
	defer ec.ZeroBytes(shared)

	key, err := ec.MessageKey(shared, nonce, cfg.context)
	if err != nil {
		return nil, &DecryptionError{Stage: "derive", Err: err}
	}
	return key, nil
}
