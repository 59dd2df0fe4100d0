package driftmarket

import (
	"fmt"
	"time"
)

// Registered public key purposes and types, as stored on identity records.
const (
	// KeyPurposeEncryption marks the key counterparts encrypt to.
	KeyPurposeEncryption = "encryption"
	// KeyPurposeSigning marks the key used for ledger signatures. The core
	// never encrypts to signing keys.
	KeyPurposeSigning = "signing"

	// KeyTypeEllipticCurve is the only key type this core understands.
	KeyTypeEllipticCurve = "elliptic-curve"
)

// IdentityKey is one registered public key of an identity.
type IdentityKey struct {
	Purpose    string     `json:"purpose"`
	Type       string     `json:"type"`
	Data       []byte     `json:"data"`
	DisabledAt *time.Time `json:"disabledAt,omitempty"`
}

// Disabled reports whether the key has been retired and must no longer be
// encrypted to or matched against.
func (k *IdentityKey) Disabled() bool {
	return k.DisabledAt != nil
}

// Identity is the document-store record describing a counterpart: its id and
// registered public keys. The core reads these records; it never writes them.
type Identity struct {
	ID         string        `json:"id"`
	PublicKeys []IdentityKey `json:"publicKeys"`
}

// EncryptionKey returns the identity's enabled encryption-purpose
// elliptic-curve key, parsed and ready to seal to. Disabled keys are
// filtered out. Fails with ErrNoEncryptionKey if none remains, or
// ErrInvalidKeyMaterial if the registered bytes do not decode to a curve
// point.
func (id *Identity) EncryptionKey() (*PublicKey, error) {
	for i := range id.PublicKeys {
		k := &id.PublicKeys[i]
		if k.Purpose != KeyPurposeEncryption || k.Type != KeyTypeEllipticCurve || k.Disabled() {
			continue
		}
		pub, err := ParsePublicKey(k.Data)
		if err != nil {
			return nil, &KeyMaterialError{Field: "identityKey", Err: err}
		}
		return pub, nil
	}
	return nil, fmt.Errorf("%w: identity %s", ErrNoEncryptionKey, id.ID)
}

// enabledCurveKeys yields the identity's non-disabled elliptic-curve keys of
// any purpose, for validator matching.
func (id *Identity) enabledCurveKeys() []*IdentityKey {
	var keys []*IdentityKey
	for i := range id.PublicKeys {
		k := &id.PublicKeys[i]
		if k.Type != KeyTypeEllipticCurve || k.Disabled() {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
