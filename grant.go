package driftmarket

import (
	"bytes"
	"fmt"
	"time"
)

// GrantStatus is one step of the per-(owner, grantee) access lifecycle.
type GrantStatus int

const (
	// GrantStatusNone means no relationship exists, or a request was
	// declined.
	GrantStatusNone GrantStatus = iota
	// GrantStatusRequested means the grantee has asked for access.
	GrantStatusRequested
	// GrantStatusGranted means the owner has issued a wrapped content key.
	GrantStatusGranted
	// GrantStatusRevoked means the owner has withdrawn a previously issued
	// grant.
	GrantStatusRevoked
)

// String returns the status name.
func (s GrantStatus) String() string {
	switch s {
	case GrantStatusNone:
		return "none"
	case GrantStatusRequested:
		return "requested"
	case GrantStatusGranted:
		return "granted"
	case GrantStatusRevoked:
		return "revoked"
	default:
		return fmt.Sprintf("GrantStatus(%d)", int(s))
	}
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Allowed: none->requested, requested->granted, requested->none (declined),
// granted->revoked, revoked->requested (re-request after revocation). A
// request can never be revoked without having been granted first.
func (s GrantStatus) CanTransitionTo(next GrantStatus) bool {
	switch s {
	case GrantStatusNone:
		return next == GrantStatusRequested
	case GrantStatusRequested:
		return next == GrantStatusGranted || next == GrantStatusNone
	case GrantStatusGranted:
		return next == GrantStatusRevoked
	case GrantStatusRevoked:
		return next == GrantStatusRequested
	default:
		return false
	}
}

// Transition returns next if the lifecycle allows it, or
// ErrInvalidGrantTransition.
func (s GrantStatus) Transition(next GrantStatus) (GrantStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidGrantTransition, s, next)
	}
	return next, nil
}

// AccessGrant conveys one follower's right to read one epoch of an owner's
// private feed: the epoch's content key sealed to the grantee. The owner is
// the sole authority that can create or revoke grants for its own feed.
type AccessGrant struct {
	OwnerID        string     `json:"ownerId"`
	GranteeID      string     `json:"granteeId"`
	Epoch          uint64     `json:"epoch"`
	KeyFingerprint []byte     `json:"keyFingerprint,omitempty"`
	WrappedKey     *Envelope  `json:"wrappedContentKey"`
	GrantedAt      time.Time  `json:"grantedAt"`
	RevokedAt      *time.Time `json:"revokedAt,omitempty"`
}

// grantContext binds a grant envelope to its exact owner/grantee pair and
// epoch through the key derivation, so a wrapped key can never be replayed
// under a different grant record.
func grantContext(ownerID, granteeID string, epoch uint64) string {
	return fmt.Sprintf("grant:%s:%s:%d", ownerID, granteeID, epoch)
}

// IssueGrant seals a content key to a grantee in response to an approved
// access request. Only the feed owner holds the content key, which makes it
// the only party able to call this for its feed. Issuance to different
// grantees is independent and safe to run concurrently.
func IssueGrant(ck ContentKey, owner *KeyPair, granteeID string, grantee *PublicKey) (*AccessGrant, error) {
	if err := ck.validate(); err != nil {
		return nil, err
	}
	if granteeID == "" {
		return nil, fmt.Errorf("%w: grant has no grantee", ErrInvalidRecord)
	}

	env, err := Seal(ck.Key, owner, grantee, WithContext(grantContext(ck.OwnerID, granteeID, ck.Epoch)))
	if err != nil {
		return nil, &GrantError{OwnerID: ck.OwnerID, GranteeID: granteeID, Epoch: ck.Epoch, Err: err}
	}

	return &AccessGrant{
		OwnerID:        ck.OwnerID,
		GranteeID:      granteeID,
		Epoch:          ck.Epoch,
		KeyFingerprint: ck.Fingerprint(),
		WrappedKey:     env,
		GrantedAt:      time.Now().UTC(),
	}, nil
}

// Revoke marks the grant revoked at the given time. The sealed envelope is
// left untouched: copies already distributed remain cryptographically valid,
// and a revoked follower keeps whatever it already unwrapped. Revocation is
// a policy marker readers must honor, not a cryptographic guarantee; cutting
// off future content requires rotating the content key and re-granting the
// remaining followers.
func (g *AccessGrant) Revoke(at time.Time) {
	at = at.UTC()
	g.RevokedAt = &at
}

// Revoked reports whether the grant carries a revocation marker.
func (g *AccessGrant) Revoked() bool {
	return g.RevokedAt != nil
}

// Validate checks the structural shape of a stored grant record.
func (g *AccessGrant) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grant", ErrInvalidRecord)
	}
	if g.OwnerID == "" || g.GranteeID == "" {
		return fmt.Errorf("%w: grant is missing owner or grantee", ErrInvalidRecord)
	}
	if g.Epoch == 0 {
		return fmt.Errorf("%w: grant epoch must be positive", ErrInvalidRecord)
	}
	return g.WrappedKey.Validate()
}

// OpenGrant unwraps the content key on the grantee side. The revocation
// marker is enforced before any cryptography: a revoked grant fails with
// ErrGrantRevoked even though its envelope would still decrypt. Key
// mismatches surface as ErrDecryptionFailed.
func OpenGrant(g *AccessGrant, grantee *KeyPair, owner *PublicKey) (ContentKey, error) {
	if err := g.Validate(); err != nil {
		return ContentKey{}, err
	}
	if g.Revoked() {
		return ContentKey{}, &GrantError{OwnerID: g.OwnerID, GranteeID: g.GranteeID, Epoch: g.Epoch, Err: ErrGrantRevoked}
	}

	key, err := g.WrappedKey.Open(grantee, owner, WithContext(grantContext(g.OwnerID, g.GranteeID, g.Epoch)))
	if err != nil {
		return ContentKey{}, err
	}

	ck := ContentKey{OwnerID: g.OwnerID, Epoch: g.Epoch, Key: key}
	if err := ck.validate(); err != nil {
		return ContentKey{}, err
	}
	if len(g.KeyFingerprint) > 0 && !bytes.Equal(g.KeyFingerprint, ck.Fingerprint()) {
		return ContentKey{}, fmt.Errorf("%w: content key does not match grant fingerprint", ErrInvalidRecord)
	}
	return ck, nil
}
