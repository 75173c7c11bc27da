// Package storage implements Secure Storage (C13): AES-encrypted records
// over an injected persistence adapter, with per-entry TTL and lazy
// expiry on read (spec §4.13).
package storage

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"time"

	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/facade"
	"github.com/cryptoguard/core/internal/primitive"
)

// Adapter is the injected persistence backend (spec §4.13
// `get/set/remove/clear/keys`).
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// record is the on-wire shape persisted by the adapter.
type record struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	CreatedAt  int64  `json:"createdAt"`
	TTL        *int64 `json:"ttl,omitempty"`
}

func (r record) expired(now time.Time) bool {
	if r.TTL == nil {
		return false
	}
	return now.UnixMilli() > r.CreatedAt+*r.TTL
}

// Config configures a SecureStorage instance.
type Config struct {
	Key       []byte
	KeyPrefix string
	Adapter   Adapter
}

// SecureStorage is an AES-encrypted key/value store backed by an injected
// Adapter.
type SecureStorage struct {
	facade *facade.Facade
	key    []byte
	prefix string
	store  Adapter
}

// New constructs a SecureStorage. A nil facade builds a default one.
func New(f *facade.Facade, cfg Config) *SecureStorage {
	if f == nil {
		f = facade.New(nil, nil, nil, nil, nil, 0)
	}
	return &SecureStorage{facade: f, key: cfg.Key, prefix: cfg.KeyPrefix, store: cfg.Adapter}
}

func (s *SecureStorage) namespaced(key string) string {
	return s.prefix + key
}

// Set encrypts value and persists it under key, with an optional TTL.
func (s *SecureStorage) Set(ctx context.Context, key string, value []byte, ttl *time.Duration) *coreerrors.CoreError {
	enc := s.facade.AESEncrypt(ctx, value, s.key, facade.SymmetricOptions{KeySize: len(s.key) * 8, Mode: primitive.ModeCBC})
	if !enc.Success {
		return coreerrors.New(coreerrors.KindStorageFailed, "encryption failed while storing value").Build()
	}

	rec := record{
		Ciphertext: base64.StdEncoding.EncodeToString(enc.Data),
		IV:         hex.EncodeToString(enc.IV),
		CreatedAt:  time.Now().UnixMilli(),
	}
	if ttl != nil {
		ms := ttl.Milliseconds()
		rec.TTL = &ms
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return coreerrors.New(coreerrors.KindStorageFailed, "record serialization failed").WithCause(err).Build()
	}

	if err := s.store.Set(ctx, s.namespaced(key), raw); err != nil {
		return coreerrors.New(coreerrors.KindStorageFailed, "persistence write failed").WithCause(err).Build()
	}
	return nil
}

// Get decrypts and returns the value at key. Absent or expired keys return
// (nil, false, nil) — never an error (spec §4.13 "yields undefined").
func (s *SecureStorage) Get(ctx context.Context, key string) ([]byte, bool, *coreerrors.CoreError) {
	raw, ok, err := s.store.Get(ctx, s.namespaced(key))
	if err != nil {
		return nil, false, coreerrors.New(coreerrors.KindStorageFailed, "persistence read failed").WithCause(err).Build()
	}
	if !ok {
		return nil, false, nil
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, coreerrors.New(coreerrors.KindStorageFailed, "record deserialization failed").WithCause(err).Build()
	}

	if rec.expired(time.Now()) {
		_ = s.store.Remove(ctx, s.namespaced(key))
		return nil, false, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(rec.Ciphertext)
	if err != nil {
		return nil, false, coreerrors.New(coreerrors.KindStorageFailed, "stored ciphertext is malformed").Build()
	}
	iv, err := hex.DecodeString(rec.IV)
	if err != nil {
		return nil, false, coreerrors.New(coreerrors.KindStorageFailed, "stored iv is malformed").Build()
	}

	dec := s.facade.AESDecrypt(ctx, ciphertext, s.key, iv, nil, facade.SymmetricOptions{KeySize: len(s.key) * 8, Mode: primitive.ModeCBC})
	if !dec.Success {
		return nil, false, coreerrors.New(coreerrors.KindDecryptionFailed, "stored value could not be decrypted").Build()
	}
	return dec.Data, true, nil
}

// Delete removes key, if present.
func (s *SecureStorage) Delete(ctx context.Context, key string) *coreerrors.CoreError {
	if err := s.store.Remove(ctx, s.namespaced(key)); err != nil {
		return coreerrors.New(coreerrors.KindStorageFailed, "persistence delete failed").WithCause(err).Build()
	}
	return nil
}

// Clear removes every entry in this storage's namespace.
func (s *SecureStorage) Clear(ctx context.Context) *coreerrors.CoreError {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return coreerrors.New(coreerrors.KindStorageFailed, "key enumeration failed").WithCause(err).Build()
	}
	for _, k := range keys {
		if len(k) >= len(s.prefix) && k[:len(s.prefix)] == s.prefix {
			_ = s.store.Remove(ctx, k)
		}
	}
	return nil
}

// Keys lists every non-expired key in this storage's namespace, performing
// eager expiry (spec §4.13 "eager expiry when an iteration is requested").
func (s *SecureStorage) Keys(ctx context.Context) ([]string, *coreerrors.CoreError) {
	all, err := s.store.Keys(ctx)
	if err != nil {
		return nil, coreerrors.New(coreerrors.KindStorageFailed, "key enumeration failed").WithCause(err).Build()
	}

	out := make([]string, 0, len(all))
	for _, k := range all {
		if len(k) < len(s.prefix) || k[:len(s.prefix)] != s.prefix {
			continue
		}
		raw, ok, err := s.store.Get(ctx, k)
		if err != nil || !ok {
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.expired(time.Now()) {
			_ = s.store.Remove(ctx, k)
			continue
		}
		out = append(out, k[len(s.prefix):])
	}
	return out, nil
}
