package driftmarket

import "context"

// DocumentStore is the narrow interface to the external ledger/query service
// this core depends on. Implementations must round-trip documents
// byte-exact: whatever bytes PutDocument was given, GetDocument returns.
//
// The core never performs I/O on its own. Components are synchronous and
// CPU-bound; callers fetch identities and persist grants or vault records as
// separate, externally-owned steps around each call, and own any timeout or
// cancellation policy through ctx.
type DocumentStore interface {
	// GetIdentity fetches a counterpart's identity record by id.
	GetIdentity(ctx context.Context, id string) (*Identity, error)

	// PutDocument stores an opaque record (a serialized envelope, grant, or
	// vault) under a caller-chosen key.
	PutDocument(ctx context.Context, key string, data []byte) error

	// GetDocument retrieves the exact bytes previously stored under key.
	GetDocument(ctx context.Context, key string) ([]byte, error)
}
