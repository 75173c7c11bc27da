// Package rotation implements the Key Rotation Engine (C12): an ordered
// key registry with exactly one active version at a time, deprecation on
// rotation, and encrypt/decrypt/reencrypt operations routed by version.
// Unlike the process-wide singletons (cache, pool, rate limiter, observer),
// every caller owns its own registry (spec §5).
package rotation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/facade"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
)

// KeyInfo is one version's metadata and material (spec §3.1).
type KeyInfo struct {
	Version    string
	Material   []byte
	CreatedAt  time.Time
	Active     bool
	Deprecated bool
	ExpiresAt  *time.Time
}

func (k KeyInfo) expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

// Envelope is a rotation-aware encrypted record: the ciphertext plus the
// key version and cipher parameters needed to decrypt it.
type Envelope struct {
	KeyVersion string
	Algorithm  primitive.Algorithm
	Mode       primitive.Mode
	Ciphertext []byte
	IV         []byte
	Tag        []byte
}

// ReencryptOutcome is the per-item result of a batch reencryption.
type ReencryptOutcome struct {
	Success      bool
	NewKeyVersion string
	OldKeyVersion string
	Envelope     Envelope
	Error        *coreerrors.CoreError
}

// Registry holds the ordered key set and the facade used to drive the
// underlying symmetric cipher.
type Registry struct {
	mu            sync.RWMutex
	keys          map[string]*KeyInfo
	order         []string
	activeVersion string
	facade        *facade.Facade
	defaultAlgo   primitive.Algorithm
	defaultMode   primitive.Mode
}

// New constructs an empty registry driven by the given facade.
func New(f *facade.Facade) *Registry {
	if f == nil {
		f = facade.New(nil, nil, nil, nil, nil, 0)
	}
	return &Registry{
		keys:        make(map[string]*KeyInfo),
		facade:      f,
		defaultAlgo: primitive.AES,
		defaultMode: primitive.ModeCBC,
	}
}

// AddKey registers a new version; fails if the version already exists.
func (r *Registry) AddKey(version string, material []byte, expiresAt *time.Time) *coreerrors.CoreError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[version]; exists {
		return coreerrors.New(coreerrors.KindInvalidState, "key version already exists").
			WithDetails(map[string]any{"version": version}).Build()
	}

	r.keys[version] = &KeyInfo{Version: version, Material: material, CreatedAt: time.Now(), ExpiresAt: expiresAt}
	r.order = append(r.order, version)
	return nil
}

// AddKeyAuto registers a new version under a generated version tag
// (uuid.New) and returns it, for callers that don't assign their own
// version scheme.
func (r *Registry) AddKeyAuto(material []byte, expiresAt *time.Time) (string, *coreerrors.CoreError) {
	version := uuid.New().String()
	if err := r.AddKey(version, material, expiresAt); err != nil {
		return "", err
	}
	return version, nil
}

// SetActiveKey deactivates the prior active version and activates the
// given one. Fails if the version is missing or expired.
func (r *Registry) SetActiveKey(version string) *coreerrors.CoreError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setActiveLocked(version)
}

func (r *Registry) setActiveLocked(version string) *coreerrors.CoreError {
	key, ok := r.keys[version]
	if !ok {
		return coreerrors.New(coreerrors.KindKeyNotFound, "key version not found").
			WithDetails(map[string]any{"version": version}).Build()
	}
	if key.expired(time.Now()) {
		return coreerrors.New(coreerrors.KindKeyExpired, "key version has expired").
			WithDetails(map[string]any{"version": version}).Build()
	}

	if r.activeVersion != "" {
		if prior, ok := r.keys[r.activeVersion]; ok {
			prior.Active = false
		}
	}
	key.Active = true
	r.activeVersion = version
	return nil
}

// RotateKey atomically deprecates the current active version, registers
// newVersion, and activates it.
func (r *Registry) RotateKey(newVersion string, material []byte, expiresAt *time.Time) *coreerrors.CoreError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[newVersion]; exists {
		return coreerrors.New(coreerrors.KindInvalidState, "key version already exists").
			WithDetails(map[string]any{"version": newVersion}).Build()
	}

	if prior, ok := r.keys[r.activeVersion]; ok {
		prior.Deprecated = true
	}

	r.keys[newVersion] = &KeyInfo{Version: newVersion, Material: material, CreatedAt: time.Now(), ExpiresAt: expiresAt}
	r.order = append(r.order, newVersion)
	return r.setActiveLocked(newVersion)
}

// RotateKeyAuto rotates in a new version under a generated version tag
// (uuid.New) and returns it.
func (r *Registry) RotateKeyAuto(material []byte, expiresAt *time.Time) (string, *coreerrors.CoreError) {
	newVersion := uuid.New().String()
	if err := r.RotateKey(newVersion, material, expiresAt); err != nil {
		return "", err
	}
	return newVersion, nil
}

// RemoveKey deletes a non-active version from the registry.
func (r *Registry) RemoveKey(version string) *coreerrors.CoreError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if version == r.activeVersion {
		return coreerrors.New(coreerrors.KindInvalidState, "cannot remove the active key version").Build()
	}
	if _, ok := r.keys[version]; !ok {
		return coreerrors.New(coreerrors.KindKeyNotFound, "key version not found").Build()
	}
	delete(r.keys, version)
	for i, v := range r.order {
		if v == version {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Encrypt encrypts plaintext under the active key.
func (r *Registry) Encrypt(ctx context.Context, plaintext []byte) (Envelope, *coreerrors.CoreError) {
	r.mu.RLock()
	active := r.activeVersion
	key, ok := r.keys[active]
	algo, mode := r.defaultAlgo, r.defaultMode
	r.mu.RUnlock()

	if !ok {
		return Envelope{}, coreerrors.New(coreerrors.KindInvalidState, "no active key is set").Build()
	}

	enc := r.facade.AESEncrypt(ctx, plaintext, key.Material, facade.SymmetricOptions{KeySize: len(key.Material) * 8, Mode: mode})
	if !enc.Success {
		return Envelope{}, coreerrors.New(coreerrors.KindEncryptionFailed, "key-rotation-scoped encryption failed").WithCause(errorFromResult(enc.Error)).Build()
	}

	return Envelope{KeyVersion: active, Algorithm: algo, Mode: mode, Ciphertext: enc.Data, IV: enc.IV, Tag: enc.Tag}, nil
}

// Decrypt routes ciphertext to the key version named in the envelope.
func (r *Registry) Decrypt(ctx context.Context, env Envelope) ([]byte, *coreerrors.CoreError) {
	r.mu.RLock()
	key, ok := r.keys[env.KeyVersion]
	r.mu.RUnlock()

	if !ok {
		return nil, coreerrors.New(coreerrors.KindKeyNotFound, "key version not found").
			WithDetails(map[string]any{"version": env.KeyVersion}).Build()
	}

	dec := r.facade.AESDecrypt(ctx, env.Ciphertext, key.Material, env.IV, env.Tag, facade.SymmetricOptions{KeySize: len(key.Material) * 8, Mode: env.Mode})
	if !dec.Success {
		return nil, coreerrors.New(coreerrors.KindDecryptionFailed, "decryption failed").Build()
	}
	return dec.Data, nil
}

// Reencrypt decrypts env with its own key version and re-encrypts the
// result with the current active key.
func (r *Registry) Reencrypt(ctx context.Context, env Envelope) ReencryptOutcome {
	plaintext, err := r.Decrypt(ctx, env)
	if err != nil {
		return ReencryptOutcome{Success: false, OldKeyVersion: env.KeyVersion, Error: err}
	}

	newEnv, err := r.Encrypt(ctx, plaintext)
	if err != nil {
		return ReencryptOutcome{Success: false, OldKeyVersion: env.KeyVersion, Error: err}
	}

	return ReencryptOutcome{Success: true, NewKeyVersion: newEnv.KeyVersion, OldKeyVersion: env.KeyVersion, Envelope: newEnv}
}

// ReencryptBatch reencrypts every envelope, never stopping at the first
// failure (spec §4.12).
func (r *Registry) ReencryptBatch(ctx context.Context, envs []Envelope) []ReencryptOutcome {
	out := make([]ReencryptOutcome, len(envs))
	for i, env := range envs {
		out[i] = r.Reencrypt(ctx, env)
	}
	return out
}

// CleanupExpiredKeys removes every expired, non-active version and returns
// the count removed.
func (r *Registry) CleanupExpiredKeys() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	remaining := r.order[:0:0]
	for _, version := range r.order {
		key := r.keys[version]
		if version != r.activeVersion && key.expired(now) {
			delete(r.keys, version)
			removed++
			continue
		}
		remaining = append(remaining, version)
	}
	r.order = remaining
	return removed
}

// ExportedRegistry is the lossless JSON shape of Export/Import (spec §6
// "Key rotation export format").
type ExportedRegistry struct {
	Keys             []KeyInfo
	ActiveKeyVersion string
}

// Export returns every KeyInfo (ordered by insertion) plus the active
// version, for lossless round-trip via Import.
func (r *Registry) Export() ExportedRegistry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]KeyInfo, 0, len(r.order))
	for _, version := range r.order {
		keys = append(keys, *r.keys[version])
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].CreatedAt.Before(keys[j].CreatedAt) })
	return ExportedRegistry{Keys: keys, ActiveKeyVersion: r.activeVersion}
}

// Import replaces the registry contents with a previously exported set.
func (r *Registry) Import(data ExportedRegistry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys = make(map[string]*KeyInfo, len(data.Keys))
	r.order = r.order[:0]
	for _, k := range data.Keys {
		copied := k
		r.keys[k.Version] = &copied
		r.order = append(r.order, k.Version)
	}
	r.activeVersion = data.ActiveKeyVersion
}

func errorFromResult(info *result.ErrorInfo) error {
	if info == nil {
		return nil
	}
	return coreerrors.New(coreerrors.Kind(info.Kind), info.Message).WithAlgorithm(info.Algorithm).Build()
}
