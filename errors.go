package driftmarket

import (
	"errors"
	"fmt"

	"github.com/driftmarket/crypto-go/internal/ec"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyMaterial is returned when a private scalar or public
	// point is malformed. Fatal; the caller must re-collect the input.
	ErrInvalidKeyMaterial = errors.New("invalid key material")

	// ErrDecryptionFailed is returned when an envelope's authentication tag
	// does not verify: wrong keys, corrupted ciphertext, or tampering.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrGrantRevoked is returned when opening a grant whose RevokedAt is
	// set. Policy-level, not cryptographic: the sealed envelope itself is
	// still valid.
	ErrGrantRevoked = errors.New("access grant has been revoked")

	// ErrWrongPassword is returned when a vault cannot be opened. The same
	// error covers a wrong password and a corrupted blob so callers cannot
	// be used as an oracle to distinguish the two.
	ErrWrongPassword = errors.New("wrong password")

	// ErrMalformedKey is returned by the validator when the candidate input
	// does not parse as a private key at all, as opposed to parsing but not
	// matching the identity.
	ErrMalformedKey = errors.New("key is not a recognized format")

	// ErrInvalidGrantTransition is returned for a grant status transition
	// the lifecycle does not allow.
	ErrInvalidGrantTransition = errors.New("invalid grant status transition")

	// ErrNoEncryptionKey is returned when an identity has no enabled
	// encryption-purpose elliptic-curve key.
	ErrNoEncryptionKey = errors.New("identity has no enabled encryption key")

	// ErrInvalidRecord is returned when a serialized record (envelope,
	// grant, vault) fails structural validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrVaultRequired is returned when a password credential is resolved
	// without a backup vault to open.
	ErrVaultRequired = errors.New("password credential requires a backup vault")
)

// DriftmarketError is implemented by all structured errors of this package.
type DriftmarketError interface {
	error
	DriftmarketError() // marker method
}

// KeyMaterialError reports malformed key material and which input carried it.
type KeyMaterialError struct {
	Field string // "privateKey", "publicKey", "wif", "identityKey"
	Err   error
}

func (e *KeyMaterialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid key material (%s): %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid key material (%s)", e.Field)
}

// Unwrap returns the underlying error.
func (e *KeyMaterialError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyMaterialError) Is(target error) bool {
	return target == ErrInvalidKeyMaterial
}

// DriftmarketError implements the DriftmarketError interface.
func (e *KeyMaterialError) DriftmarketError() {}

// DecryptionError represents a failure to open an envelope.
type DecryptionError struct {
	Stage string // "derive", "aead"
	Err   error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decryption failed at %s", e.Stage)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// DriftmarketError implements the DriftmarketError interface.
func (e *DecryptionError) DriftmarketError() {}

// GrantError carries the identifiers of the grant an operation failed on.
type GrantError struct {
	OwnerID   string
	GranteeID string
	Epoch     uint64
	Err       error
}

func (e *GrantError) Error() string {
	return fmt.Sprintf("grant %s->%s epoch %d: %v", e.OwnerID, e.GranteeID, e.Epoch, e.Err)
}

// Unwrap returns the underlying error.
func (e *GrantError) Unwrap() error {
	return e.Err
}

// DriftmarketError implements the DriftmarketError interface.
func (e *GrantError) DriftmarketError() {}

// wrapKeyError converts internal primitive errors to public errors so that
// errors.Is() checks work with public sentinel errors.
func wrapKeyError(err error, field string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ec.ErrInvalidScalar),
		errors.Is(err, ec.ErrInvalidScalarSize),
		errors.Is(err, ec.ErrInvalidPoint),
		errors.Is(err, ec.ErrInvalidPointSize),
		errors.Is(err, ec.ErrMalformedWIF):
		return &KeyMaterialError{Field: field, Err: err}
	}

	return err
}
