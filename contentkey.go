package driftmarket

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/driftmarket/crypto-go/internal/ec"
)

// ContentKeySize is the size of a feed content key in bytes.
const ContentKeySize = 32

// FingerprintSize is the size of a content key fingerprint in bytes.
const FingerprintSize = 16

// ContentKey is a symmetric key encrypting one epoch of an owner's private
// feed. Exactly one content key is current per owner at a time; rotation
// supersedes a key without deleting it, so content encrypted under old
// epochs stays readable by anyone who already holds those keys.
type ContentKey struct {
	OwnerID string
	Epoch   uint64
	Key     []byte
}

// Fingerprint returns a short BLAKE2b digest of the key, safe to store on
// grant records so they can reference a content key without revealing it.
func (ck ContentKey) Fingerprint() []byte {
	sum := blake2b.Sum256(ck.Key)
	return sum[:FingerprintSize]
}

func (ck ContentKey) validate() error {
	if ck.OwnerID == "" {
		return fmt.Errorf("%w: content key has no owner", ErrInvalidRecord)
	}
	if ck.Epoch == 0 {
		return fmt.Errorf("%w: content key epoch must be positive", ErrInvalidRecord)
	}
	if len(ck.Key) != ContentKeySize {
		return fmt.Errorf("%w: content key size %d, expected %d", ErrInvalidRecord, len(ck.Key), ContentKeySize)
	}
	return nil
}

// FeedKeychain holds one owner's content keys across epochs: the current key
// plus every superseded one. It is an in-memory convenience for the feed
// owner; persisting keys (typically inside a backup vault) and re-importing
// them is the caller's responsibility.
type FeedKeychain struct {
	mu      sync.Mutex
	ownerID string
	epoch   uint64
	keys    map[uint64][]byte
}

// NewFeedKeychain creates an empty keychain for an owner. No content key
// exists until the first [FeedKeychain.Rotate], which enables the private
// feed at epoch 1.
func NewFeedKeychain(ownerID string) *FeedKeychain {
	return &FeedKeychain{
		ownerID: ownerID,
		keys:    make(map[uint64][]byte),
	}
}

// OwnerID returns the owner this keychain belongs to.
func (f *FeedKeychain) OwnerID() string {
	return f.ownerID
}

// Rotate generates a fresh content key and bumps the epoch. The previous
// key, if any, is retained for decrypting content already encrypted under
// it. After rotating, the owner must re-issue grants to every follower it
// wishes to retain; followers not re-granted simply never receive the new
// epoch's wrapped key.
func (f *FeedKeychain) Rotate() (ContentKey, error) {
	key := make([]byte, ContentKeySize)
	if err := ec.ReadRandom(key); err != nil {
		return ContentKey{}, fmt.Errorf("generate content key: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.epoch++
	f.keys[f.epoch] = key
	return f.snapshotLocked(f.epoch), nil
}

// Current returns the current epoch's content key, if the feed has been
// enabled.
func (f *FeedKeychain) Current() (ContentKey, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.epoch == 0 {
		return ContentKey{}, false
	}
	return f.snapshotLocked(f.epoch), true
}

// KeyForEpoch returns the content key for a specific epoch, current or
// superseded.
func (f *FeedKeychain) KeyForEpoch(epoch uint64) (ContentKey, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[epoch]; !ok {
		return ContentKey{}, false
	}
	return f.snapshotLocked(epoch), true
}

// Epoch returns the current epoch, 0 if the feed was never enabled.
func (f *FeedKeychain) Epoch() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch
}

// Import restores a persisted content key into the keychain, e.g. after
// restoring from a backup vault. The current epoch only moves forward:
// importing an older epoch fills history without rewinding.
func (f *FeedKeychain) Import(ck ContentKey) error {
	if err := ck.validate(); err != nil {
		return err
	}
	if ck.OwnerID != f.ownerID {
		return fmt.Errorf("%w: content key owner %q does not match keychain owner %q", ErrInvalidRecord, ck.OwnerID, f.ownerID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[ck.Epoch] = append([]byte(nil), ck.Key...)
	if ck.Epoch > f.epoch {
		f.epoch = ck.Epoch
	}
	return nil
}

// Zero scrubs all key material from the keychain.
func (f *FeedKeychain) Zero() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for epoch, key := range f.keys {
		ec.ZeroBytes(key)
		delete(f.keys, epoch)
	}
	f.epoch = 0
}

func (f *FeedKeychain) snapshotLocked(epoch uint64) ContentKey {
	return ContentKey{
		OwnerID: f.ownerID,
		Epoch:   epoch,
		Key:     append([]byte(nil), f.keys[epoch]...),
	}
}
