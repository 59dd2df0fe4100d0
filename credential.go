package driftmarket

import (
	"errors"
	"fmt"
)

// CredentialKind tags which kind of secret a user supplied at login. The
// calling UI decides the kind explicitly; the core does not guess from the
// shape of the input.
type CredentialKind int

const (
	// CredentialPrivateKey is a raw 32-byte private scalar.
	CredentialPrivateKey CredentialKind = iota
	// CredentialWIF is a WIF-encoded private key string.
	CredentialWIF
	// CredentialPassword is a backup vault password.
	CredentialPassword
)

// String returns the kind name.
func (k CredentialKind) String() string {
	switch k {
	case CredentialPrivateKey:
		return "private-key"
	case CredentialWIF:
		return "wif"
	case CredentialPassword:
		return "password"
	default:
		return "unknown"
	}
}

// Credential is a tagged login secret. Construct one with
// [PrivateKeyCredential], [WIFCredential], or [PasswordCredential].
type Credential struct {
	kind     CredentialKind
	key      []byte
	wif      string
	password string
}

// PrivateKeyCredential wraps a raw private scalar.
func PrivateKeyCredential(key []byte) Credential {
	return Credential{kind: CredentialPrivateKey, key: append([]byte(nil), key...)}
}

// WIFCredential wraps a WIF-encoded private key.
func WIFCredential(wif string) Credential {
	return Credential{kind: CredentialWIF, wif: wif}
}

// PasswordCredential wraps a backup vault password.
func PasswordCredential(password string) Credential {
	return Credential{kind: CredentialPassword, password: password}
}

// Kind returns the credential's tag.
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// ResolveKeyPair turns a credential into a key pair. Key and WIF
// credentials parse directly; a password credential opens the supplied
// backup vault, failing with ErrVaultRequired when the caller has none.
func ResolveKeyPair(c Credential, vault *BackupVault) (*KeyPair, error) {
	switch c.kind {
	case CredentialPrivateKey:
		return KeyPairFromBytes(c.key)
	case CredentialWIF:
		return KeyPairFromWIF(c.wif)
	case CredentialPassword:
		if vault == nil {
			return nil, ErrVaultRequired
		}
		return vault.Restore(c.password)
	default:
		return nil, fmt.Errorf("%w: unknown credential kind %d", ErrInvalidKeyMaterial, int(c.kind))
	}
}

// Login resolves a credential and validates the resulting key against the
// claimed identity in one step, the exact sequence the login flow performs.
// The returned key pair is non-nil only for a ValidationValid result.
func Login(c Credential, identity *Identity, vault *BackupVault) (*KeyPair, ValidationResult, error) {
	kp, err := ResolveKeyPair(c, vault)
	if err != nil {
		var kmErr *KeyMaterialError
		if errors.As(err, &kmErr) {
			return nil, ValidationResult{Status: ValidationMalformedKey}, nil
		}
		return nil, ValidationResult{}, err
	}

	result := matchDerived(kp, identity)
	if result.Status != ValidationValid {
		kp.Zero()
		return nil, result, nil
	}
	return kp, result, nil
}
