// Package driftmarket implements the client-side cryptography core of the
// Driftmarket social/marketplace application: deterministic encrypted
// envelopes between two parties, access grants for private-feed content keys,
// password-protected key backup vaults, and key/identity validation at login.
//
// The package is pure computation. Persisting and fetching identities,
// grants, and vault records is the caller's job, through the narrow
// [DocumentStore] interface; every record round-trips byte-exact.
//
// # Algorithm Suite
//
//   - secp256k1 ECDH for the shared secret between a sender's private key and
//     a recipient's public key.
//
//   - HKDF-SHA-256 to mix the shared secret with a per-envelope 24-byte nonce
//     and a context string into the message key.
//
//   - XChaCha20-Poly1305 authenticated encryption of the payload.
//
//   - Argon2id password stretching for backup vault wrapping keys.
//
// # Security Model
//
// Envelopes use a deterministic per-message key instead of the classic ECIES
// random ephemeral keypair: the key is derived from the sender's own
// long-term key, the recipient's public key, and the transmitted nonce. This
// is a deliberate trade-off. The sender can reopen every envelope it ever
// sealed without storing ephemeral secrets (a buyer can re-read the order it
// encrypted for a seller), but the scheme provides no forward secrecy: a
// compromised long-term key exposes all past envelopes of that party. If
// forward secrecy is required, this codec must be replaced with true
// ephemeral-keypair ECIES and an explicit store of ephemeral secrets.
//
// Grant revocation is a policy marker, not a cryptographic guarantee. A
// revoked grantee keeps any content key it already unwrapped; rotating the
// content key with [FeedKeychain.Rotate] and re-issuing grants is what
// actually cuts off future content.
//
// Basic usage:
//
//	buyer, err := driftmarket.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer buyer.Zero()
//
//	// Encrypt an order payload for the seller.
//	env, err := driftmarket.Seal(orderJSON, buyer, sellerPub,
//	    driftmarket.WithContext("order:"+orderID))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Later, the buyer re-reads its own order without having stored
//	// any per-message secret.
//	payload, err := env.Reopen(buyer, sellerPub,
//	    driftmarket.WithContext("order:"+orderID))
package driftmarket
