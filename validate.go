package driftmarket

import (
	"github.com/driftmarket/crypto-go/internal/ec"
)

// ValidationStatus classifies a login key check.
type ValidationStatus int

const (
	// ValidationValid means the derived public point matches a registered,
	// enabled key of the identity.
	ValidationValid ValidationStatus = iota
	// ValidationNoMatch means the key parsed but matches none of the
	// identity's enabled keys. Surfaced to users as "key does not match
	// this identity".
	ValidationNoMatch
	// ValidationMalformedKey means the input did not parse as a private key
	// at all. Surfaced distinctly as "key is not a recognized format".
	ValidationMalformedKey
)

// String returns the status name.
func (s ValidationStatus) String() string {
	switch s {
	case ValidationValid:
		return "valid"
	case ValidationNoMatch:
		return "no-match"
	case ValidationMalformedKey:
		return "malformed-key"
	default:
		return "unknown"
	}
}

// ValidationResult is the outcome of checking a candidate private key
// against a claimed identity at login.
type ValidationResult struct {
	Status ValidationStatus
	// MatchedKey is the registered key the candidate corresponds to, set
	// only when Status is ValidationValid.
	MatchedKey *IdentityKey
}

// Err maps the result onto the package's error taxonomy: nil for a valid
// key, ErrMalformedKey or ErrNoEncryptionKey-style ErrInvalidKeyMaterial
// otherwise. Callers that prefer errors over status codes can use this
// directly.
func (r ValidationResult) Err() error {
	switch r.Status {
	case ValidationValid:
		return nil
	case ValidationMalformedKey:
		return ErrMalformedKey
	default:
		return ErrInvalidKeyMaterial
	}
}

// ValidateKey derives the public point from a raw 32-byte candidate private
// key and checks it against the claimed identity's registered, non-disabled
// elliptic-curve keys.
func ValidateKey(candidate []byte, identity *Identity) ValidationResult {
	priv, err := ec.ParsePrivateKey(candidate)
	if err != nil {
		return ValidationResult{Status: ValidationMalformedKey}
	}
	defer priv.Zero()
	return matchDerived(newKeyPair(priv), identity)
}

// ValidateWIF is ValidateKey for a WIF-encoded candidate, the form users
// paste at login.
func ValidateWIF(wif string, identity *Identity) ValidationResult {
	priv, err := ec.DecodeWIF(wif)
	if err != nil {
		return ValidationResult{Status: ValidationMalformedKey}
	}
	defer priv.Zero()
	return matchDerived(newKeyPair(priv), identity)
}

func matchDerived(kp *KeyPair, identity *Identity) ValidationResult {
	derived := kp.Public()
	for _, k := range identity.enabledCurveKeys() {
		registered, err := ParsePublicKey(k.Data)
		if err != nil {
			// A corrupt registered key cannot match; keep scanning the
			// rest of the set.
			continue
		}
		if derived.Equal(registered) {
			return ValidationResult{Status: ValidationValid, MatchedKey: k}
		}
	}
	return ValidationResult{Status: ValidationNoMatch}
}
