package ec

import "golang.org/x/crypto/argon2"

// StretchParams are the Argon2id cost parameters recorded alongside a vault
// so the wrapping key can be re-derived on any device.
type StretchParams struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
}

// DefaultStretchParams returns the Argon2id parameters used for new vaults:
// 2 passes over 64 MiB with a single lane.
func DefaultStretchParams() StretchParams {
	return StretchParams{Time: 2, MemoryKB: 64 * 1024, Threads: 1}
}

// StretchPassword derives a symmetric wrapping key from a password and salt
// using Argon2id. Callers own zeroizing the returned key.
func StretchPassword(password string, salt []byte, params StretchParams) []byte {
	return argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKB, params.Threads, KeySize)
}
