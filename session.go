package driftmarket

import (
	"context"
	"errors"
	"fmt"
)

// ErrSessionClosed is returned when operations are attempted on a closed
// session.
var ErrSessionClosed = errors.New("session has been closed")

// Session is the explicit per-caller context object for one logged-in user:
// its identity id and key pair, held for the duration of the session and
// scrubbed on Close. It replaces any process-wide singleton holding private
// key bytes; every core operation a flow needs is a method here, and all of
// them are thin wrappers over the stateless package-level functions, so
// concurrent use is safe.
type Session struct {
	ownerID string
	kp      *KeyPair
	closed  bool
}

// NewSession binds a key pair to the local user's identity id.
func NewSession(ownerID string, kp *KeyPair) (*Session, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: session requires an owner id", ErrInvalidRecord)
	}
	if kp == nil {
		return nil, &KeyMaterialError{Field: "privateKey", Err: errors.New("nil key pair")}
	}
	return &Session{ownerID: ownerID, kp: kp}, nil
}

// OwnerID returns the identity id this session belongs to.
func (s *Session) OwnerID() string {
	return s.ownerID
}

// Public returns the session's public key.
func (s *Session) Public() *PublicKey {
	return s.kp.Public()
}

// Close scrubs the session's private key material. The session must not be
// used afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.kp.Zero()
}

func (s *Session) check() error {
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

// Seal encrypts a payload from this session's user to a recipient key.
func (s *Session) Seal(payload []byte, recipient *PublicKey, opts ...SealOption) (*Envelope, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return Seal(payload, s.kp, recipient, opts...)
}

// SealTo fetches the recipient's identity from the document store and seals
// to its enabled encryption key. The store call is the only I/O and is
// governed entirely by ctx.
func (s *Session) SealTo(ctx context.Context, store DocumentStore, recipientID string, payload []byte, opts ...SealOption) (*Envelope, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	recipient, err := fetchEncryptionKey(ctx, store, recipientID)
	if err != nil {
		return nil, err
	}
	return Seal(payload, s.kp, recipient, opts...)
}

// Open decrypts an envelope a counterpart sealed to this session's user.
func (s *Session) Open(env *Envelope, sender *PublicKey, opts ...SealOption) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return env.Open(s.kp, sender, opts...)
}

// OpenFrom fetches the sender's identity from the document store and
// decrypts with its enabled encryption key.
func (s *Session) OpenFrom(ctx context.Context, store DocumentStore, senderID string, env *Envelope, opts ...SealOption) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	sender, err := fetchEncryptionKey(ctx, store, senderID)
	if err != nil {
		return nil, err
	}
	return env.Open(s.kp, sender, opts...)
}

// Reopen re-reads an envelope this session's user sealed earlier.
func (s *Session) Reopen(env *Envelope, recipient *PublicKey, opts ...SealOption) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return env.Reopen(s.kp, recipient, opts...)
}

// IssueGrant wraps a content key of this session's user for a grantee. The
// content key must belong to the session owner: only a feed's owner issues
// its grants.
func (s *Session) IssueGrant(ck ContentKey, granteeID string, grantee *PublicKey) (*AccessGrant, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if ck.OwnerID != s.ownerID {
		return nil, &GrantError{OwnerID: ck.OwnerID, GranteeID: granteeID, Epoch: ck.Epoch,
			Err: fmt.Errorf("%w: content key owner %q is not the session owner %q", ErrInvalidRecord, ck.OwnerID, s.ownerID)}
	}
	return IssueGrant(ck, s.kp, granteeID, grantee)
}

// IssueGrantTo is IssueGrant with the grantee's key fetched from the
// document store.
func (s *Session) IssueGrantTo(ctx context.Context, store DocumentStore, ck ContentKey, granteeID string) (*AccessGrant, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	grantee, err := fetchEncryptionKey(ctx, store, granteeID)
	if err != nil {
		return nil, err
	}
	return s.IssueGrant(ck, granteeID, grantee)
}

// OpenGrant unwraps a content key granted to this session's user.
func (s *Session) OpenGrant(g *AccessGrant, owner *PublicKey) (ContentKey, error) {
	if err := s.check(); err != nil {
		return ContentKey{}, err
	}
	return OpenGrant(g, s.kp, owner)
}

// CreateBackup wraps this session's private key under a password.
func (s *Session) CreateBackup(password string, opts ...VaultOption) (*BackupVault, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return CreateBackup(s.kp, password, s.ownerID, opts...)
}

func fetchEncryptionKey(ctx context.Context, store DocumentStore, id string) (*PublicKey, error) {
	identity, err := store.GetIdentity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch identity %s: %w", id, err)
	}
	return identity.EncryptionKey()
}
