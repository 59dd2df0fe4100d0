package driftmarket

import (
	"errors"
	"testing"
	"time"
)

func testIdentity(t *testing.T, id string, keys ...IdentityKey) *Identity {
	t.Helper()
	return &Identity{ID: id, PublicKeys: keys}
}

func encryptionKey(pub *PublicKey) IdentityKey {
	return IdentityKey{
		Purpose: KeyPurposeEncryption,
		Type:    KeyTypeEllipticCurve,
		Data:    pub.Bytes(),
	}
}

func TestValidateKey(t *testing.T) {
	kp := testKeyPair(t)
	other := testKeyPair(t)
	now := time.Now().UTC()

	tests := []struct {
		name      string
		candidate []byte
		identity  *Identity
		want      ValidationStatus
	}{
		{
			name:      "matching key",
			candidate: kp.Bytes(),
			identity:  testIdentity(t, "alice", encryptionKey(kp.Public())),
			want:      ValidationValid,
		},
		{
			name:      "valid key, wrong identity",
			candidate: other.Bytes(),
			identity:  testIdentity(t, "alice", encryptionKey(kp.Public())),
			want:      ValidationNoMatch,
		},
		{
			name:      "matches second registered key",
			candidate: kp.Bytes(),
			identity: testIdentity(t, "alice",
				encryptionKey(other.Public()),
				encryptionKey(kp.Public())),
			want: ValidationValid,
		},
		{
			name:      "matches signing-purpose key",
			candidate: kp.Bytes(),
			identity: testIdentity(t, "alice", IdentityKey{
				Purpose: KeyPurposeSigning,
				Type:    KeyTypeEllipticCurve,
				Data:    kp.Public().Bytes(),
			}),
			want: ValidationValid,
		},
		{
			name:      "matches uncompressed registered form",
			candidate: kp.Bytes(),
			identity: testIdentity(t, "alice", IdentityKey{
				Purpose: KeyPurposeEncryption,
				Type:    KeyTypeEllipticCurve,
				Data:    kp.Public().BytesUncompressed(),
			}),
			want: ValidationValid,
		},
		{
			name:      "disabled key does not match",
			candidate: kp.Bytes(),
			identity: testIdentity(t, "alice", IdentityKey{
				Purpose:    KeyPurposeEncryption,
				Type:       KeyTypeEllipticCurve,
				Data:       kp.Public().Bytes(),
				DisabledAt: &now,
			}),
			want: ValidationNoMatch,
		},
		{
			name:      "corrupt registered key is skipped",
			candidate: kp.Bytes(),
			identity: testIdentity(t, "alice",
				IdentityKey{Purpose: KeyPurposeEncryption, Type: KeyTypeEllipticCurve, Data: []byte{0x02, 0x00}},
				encryptionKey(kp.Public())),
			want: ValidationValid,
		},
		{
			name:      "no registered keys",
			candidate: kp.Bytes(),
			identity:  testIdentity(t, "alice"),
			want:      ValidationNoMatch,
		},
		{
			name:      "empty candidate",
			candidate: nil,
			identity:  testIdentity(t, "alice", encryptionKey(kp.Public())),
			want:      ValidationMalformedKey,
		},
		{
			name:      "short candidate",
			candidate: kp.Bytes()[:16],
			identity:  testIdentity(t, "alice", encryptionKey(kp.Public())),
			want:      ValidationMalformedKey,
		},
		{
			name:      "zero scalar",
			candidate: make([]byte, 32),
			identity:  testIdentity(t, "alice", encryptionKey(kp.Public())),
			want:      ValidationMalformedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateKey(tt.candidate, tt.identity)
			if got.Status != tt.want {
				t.Errorf("ValidateKey() status = %v, want %v", got.Status, tt.want)
			}
			if tt.want == ValidationValid && got.MatchedKey == nil {
				t.Error("ValidateKey() returned Valid without the matched key")
			}
			if tt.want != ValidationValid && got.MatchedKey != nil {
				t.Error("ValidateKey() set MatchedKey on a non-valid result")
			}
		})
	}
}

func TestValidateWIF(t *testing.T) {
	kp := testKeyPair(t)
	identity := testIdentity(t, "alice", encryptionKey(kp.Public()))

	wif := kp.WIF()
	if got := ValidateWIF(wif, identity); got.Status != ValidationValid {
		t.Errorf("ValidateWIF() status = %v, want valid", got.Status)
	}

	other := testKeyPair(t)
	if got := ValidateWIF(other.WIF(), identity); got.Status != ValidationNoMatch {
		t.Errorf("ValidateWIF() with foreign key status = %v, want no-match", got.Status)
	}

	for _, bad := range []string{"", "not-a-wif", "11111111111111111111", wif + "1"} {
		if got := ValidateWIF(bad, identity); got.Status != ValidationMalformedKey {
			t.Errorf("ValidateWIF(%q) status = %v, want malformed-key", bad, got.Status)
		}
	}
}

func TestValidationResult_Err(t *testing.T) {
	tests := []struct {
		status ValidationStatus
		want   error
	}{
		{ValidationValid, nil},
		{ValidationMalformedKey, ErrMalformedKey},
		{ValidationNoMatch, ErrInvalidKeyMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			err := ValidationResult{Status: tt.status}.Err()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Err() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Err() = %v, want %v", err, tt.want)
			}
		})
	}
}
