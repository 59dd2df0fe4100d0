package driftmarket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tyler-smith/go-bip39"

	"github.com/driftmarket/crypto-go/internal/ec"
)

// VaultVersion is the current backup vault format version.
const VaultVersion = 1

// VaultKDFName is the password-stretching algorithm recorded in vaults.
const VaultKDFName = "argon2id"

// MinBackupPassword is the minimum password length callers must enforce
// before CreateBackup. The KDF cannot compensate for very low-entropy
// inputs, so this core does not accept responsibility for the check.
const MinBackupPassword = 8

// VaultKDFParams are the Argon2id cost parameters stored alongside a vault
// so the wrapping key can be re-derived on any device.
type VaultKDFParams struct {
	Time     uint32 `json:"time"`
	MemoryKB uint32 `json:"memoryKb"`
	Threads  uint8  `json:"threads"`
}

// DefaultVaultKDFParams returns the Argon2id parameters used for new vaults.
func DefaultVaultKDFParams() VaultKDFParams {
	p := ec.DefaultStretchParams()
	return VaultKDFParams{Time: p.Time, MemoryKB: p.MemoryKB, Threads: p.Threads}
}

// BackupVault is a recoverable copy of a user's private key, wrapped under a
// password-derived key for off-device recovery. It is safe to store the
// record publicly; only the password opens it. The payload carries the
// private key plus any auxiliary secrets the user opted to include, such as
// storage-provider credentials.
type BackupVault struct {
	Version   int            `json:"version"`
	OwnerID   string         `json:"ownerId"`
	KDF       string         `json:"kdf"`
	KDFParams VaultKDFParams `json:"kdfParams"`
	Salt      []byte         `json:"salt"`
	Nonce     []byte         `json:"nonce"`
	Wrapped   []byte         `json:"wrappedPrivateKey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type vaultPayload struct {
	PrivateKey []byte            `json:"privateKey"`
	Secrets    map[string][]byte `json:"secrets,omitempty"`
}

// VaultOption configures backup creation.
type VaultOption func(*vaultConfig)

type vaultConfig struct {
	secrets map[string][]byte
	params  VaultKDFParams
}

// WithVaultSecret includes an auxiliary named secret in the vault payload.
func WithVaultSecret(name string, secret []byte) VaultOption {
	return func(c *vaultConfig) {
		if c.secrets == nil {
			c.secrets = make(map[string][]byte)
		}
		c.secrets[name] = append([]byte(nil), secret...)
	}
}

// WithVaultKDFParams overrides the Argon2id cost parameters.
func WithVaultKDFParams(params VaultKDFParams) VaultOption {
	return func(c *vaultConfig) {
		c.params = params
	}
}

// CreateBackup wraps a key pair's private key under a password for external
// persistence. A random salt is drawn per vault; creating a backup twice
// yields independent records. Either a complete vault is returned or an
// error with no side effect.
func CreateBackup(kp *KeyPair, password, ownerID string, opts ...VaultOption) (*BackupVault, error) {
	cfg := vaultConfig{params: DefaultVaultKDFParams()}
	for _, opt := range opts {
		opt(&cfg)
	}

	payload := vaultPayload{PrivateKey: kp.Bytes(), Secrets: cfg.secrets}
	now := time.Now().UTC()

	vault := &BackupVault{
		Version:   VaultVersion,
		OwnerID:   ownerID,
		KDF:       VaultKDFName,
		KDFParams: cfg.params,
		CreatedAt: now,
		UpdatedAt: now,
	}

	salt := make([]byte, ec.SaltSize)
	if err := ec.ReadRandom(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	vault.Salt = salt

	if err := vault.wrap(password, &payload); err != nil {
		return nil, err
	}
	return vault, nil
}

// Restore re-derives the wrapping key from the password and stored salt and
// unwraps the private key. Every failure, whether a wrong password or a
// corrupted blob, surfaces identically as ErrWrongPassword.
func (v *BackupVault) Restore(password string) (*KeyPair, error) {
	payload, err := v.unwrap(password)
	if err != nil {
		return nil, err
	}
	defer ec.ZeroBytes(payload.PrivateKey)

	kp, err := KeyPairFromBytes(payload.PrivateKey)
	if err != nil {
		// Undecodable key material inside an authenticated payload means
		// the vault was built wrong, but distinguishing that from a wrong
		// password would leak blob structure.
		return nil, ErrWrongPassword
	}
	return kp, nil
}

// RestoreSecrets unwraps the auxiliary secrets stored in the vault.
func (v *BackupVault) RestoreSecrets(password string) (map[string][]byte, error) {
	payload, err := v.unwrap(password)
	if err != nil {
		return nil, err
	}
	ec.ZeroBytes(payload.PrivateKey)
	return payload.Secrets, nil
}

// Update decrypts the vault, merges in an additional named secret, and
// re-encrypts under the same derived key with a fresh nonce. It returns the
// updated record and leaves the receiver untouched. Requires the correct
// password and fails the same way Restore does.
func (v *BackupVault) Update(password, name string, secret []byte) (*BackupVault, error) {
	payload, err := v.unwrap(password)
	if err != nil {
		return nil, err
	}
	defer ec.ZeroBytes(payload.PrivateKey)

	if payload.Secrets == nil {
		payload.Secrets = make(map[string][]byte)
	}
	payload.Secrets[name] = append([]byte(nil), secret...)

	updated := *v
	updated.UpdatedAt = time.Now().UTC()
	if err := updated.wrap(password, payload); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Validate checks the structural shape of a stored vault record.
func (v *BackupVault) Validate() error {
	if v == nil {
		return fmt.Errorf("%w: nil vault", ErrInvalidRecord)
	}
	if v.Version != VaultVersion {
		return fmt.Errorf("%w: unsupported vault version %d, expected %d", ErrInvalidRecord, v.Version, VaultVersion)
	}
	if v.KDF != VaultKDFName {
		return fmt.Errorf("%w: unsupported kdf %q", ErrInvalidRecord, v.KDF)
	}
	if len(v.Salt) != ec.SaltSize {
		return fmt.Errorf("%w: salt size %d, expected %d", ErrInvalidRecord, len(v.Salt), ec.SaltSize)
	}
	if len(v.Nonce) != ec.NonceSize {
		return fmt.Errorf("%w: nonce size %d, expected %d", ErrInvalidRecord, len(v.Nonce), ec.NonceSize)
	}
	if len(v.Wrapped) < ec.TagSize {
		return fmt.Errorf("%w: wrapped payload shorter than authentication tag", ErrInvalidRecord)
	}
	return nil
}

func (v *BackupVault) wrap(password string, payload *vaultPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode vault payload: %w", err)
	}
	defer ec.ZeroBytes(raw)

	key := ec.StretchPassword(password, v.Salt, v.stretchParams())
	defer ec.ZeroBytes(key)

	nonce := make([]byte, ec.NonceSize)
	if err := ec.ReadRandom(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	wrapped, err := ec.Seal(key, nonce, raw)
	if err != nil {
		return fmt.Errorf("wrap vault payload: %w", err)
	}

	v.Nonce = nonce
	v.Wrapped = wrapped
	return nil
}

func (v *BackupVault) unwrap(password string) (*vaultPayload, error) {
	if err := v.Validate(); err != nil {
		// Structural damage is reported the same as a wrong password to
		// avoid an oracle distinguishing blob corruption.
		return nil, ErrWrongPassword
	}

	key := ec.StretchPassword(password, v.Salt, v.stretchParams())
	defer ec.ZeroBytes(key)

	raw, err := ec.Open(key, v.Nonce, v.Wrapped)
	if err != nil {
		return nil, ErrWrongPassword
	}
	defer ec.ZeroBytes(raw)

	var payload vaultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrWrongPassword
	}
	return &payload, nil
}

func (v *BackupVault) stretchParams() ec.StretchParams {
	return ec.StretchParams{
		Time:     v.KDFParams.Time,
		MemoryKB: v.KDFParams.MemoryKB,
		Threads:  v.KDFParams.Threads,
	}
}

// recoveryKeyInfo is the domain-separation label for deriving a private
// scalar from a BIP-39 seed.
const recoveryKeyInfo = "driftmarket:recovery-key:v1"

// NewRecoveryPhrase generates a 24-word BIP-39 mnemonic. Together with
// [KeyPairFromRecoveryPhrase] it gives users a second recovery path next to
// the password vault: the phrase alone deterministically reproduces the key
// pair on any device.
func NewRecoveryPhrase() (string, error) {
	entropy := make([]byte, 32)
	if err := ec.ReadRandom(entropy); err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("build mnemonic: %w", err)
	}
	return mnemonic, nil
}

// KeyPairFromRecoveryPhrase deterministically derives a key pair from a
// BIP-39 mnemonic. Invalid phrases fail with ErrInvalidKeyMaterial.
func KeyPairFromRecoveryPhrase(phrase string) (*KeyPair, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, &KeyMaterialError{Field: "recoveryPhrase", Err: fmt.Errorf("invalid mnemonic")}
	}

	seed := bip39.NewSeed(phrase, "")
	defer ec.ZeroBytes(seed)

	// The derived bytes land outside the scalar range with probability
	// around 2^-128; iterate on the info label until they parse.
	info := []byte(recoveryKeyInfo)
	for i := 0; i < 8; i++ {
		candidate, err := ec.DeriveKey(seed, nil, append(info, byte(i)), ec.PrivateKeySize)
		if err != nil {
			return nil, fmt.Errorf("derive recovery key: %w", err)
		}
		kp, err := KeyPairFromBytes(candidate)
		ec.ZeroBytes(candidate)
		if err == nil {
			return kp, nil
		}
	}
	return nil, &KeyMaterialError{Field: "recoveryPhrase", Err: fmt.Errorf("seed did not yield a valid scalar")}
}
