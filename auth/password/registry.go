package password

import (
	"fmt"
)

// Registry resolves hashers by algorithm tag and hashes new passwords with
// the configured default algorithm. It is immutable after construction.
type Registry struct {
	hashers  map[Algorithm]Hasher
	fallback Hasher
}

// NewRegistry builds every supported hasher from cfg. The salted SHA-512
// hasher is always present so legacy digests remain verifiable.
func NewRegistry(cfg Config) (*Registry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sha, err := NewSaltedSHA512(cfg.Salt)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		hashers: map[Algorithm]Hasher{
			AlgorithmSaltedSHA512: sha,
			AlgorithmArgon2id:     NewArgon2Hasher(cfg.Argon2Time, cfg.Argon2Memory, cfg.Argon2Threads),
			AlgorithmBcrypt:       NewBcryptHasher(cfg.BcryptCost),
		},
	}
	r.fallback = r.hashers[cfg.Algorithm]
	return r, nil
}

// Default returns the hasher used for new digests.
func (r *Registry) Default() Hasher {
	return r.fallback
}

// MaxPasswordBytes is the longest password the default algorithm can
// hash, or 0 when there is no limit.
func (r *Registry) MaxPasswordBytes() int {
	if r.fallback.Algorithm() == AlgorithmBcrypt {
		return BcryptMaxBytes
	}
	return 0
}

// Get returns the hasher for alg. An empty tag resolves to salted SHA-512,
// the scheme of records created before tags were stored.
func (r *Registry) Get(alg Algorithm) (Hasher, bool) {
	if alg == "" {
		alg = AlgorithmSaltedSHA512
	}
	h, ok := r.hashers[alg]
	return h, ok
}

// Hash digests password with the default algorithm and returns the tag to store.
func (r *Registry) Hash(password string) (string, Algorithm, error) {
	digest, err := r.fallback.Hash(password)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	return digest, r.fallback.Algorithm(), nil
}

// Verify reports whether password matches a digest stored under alg.
// Unknown tags never match.
func (r *Registry) Verify(alg Algorithm, password, digest string) bool {
	h, ok := r.Get(alg)
	if !ok {
		return false
	}
	return h.Verify(password, digest)
}
