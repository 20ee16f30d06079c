// Package password digests and verifies account passwords.
//
// Every stored digest carries the Algorithm tag that produced it. The
// salted SHA-512 scheme is the default so that existing digests stay
// verifiable; argon2id and bcrypt can be selected for new digests, and a
// Registry verifies any stored digest by its tag.
//
//	reg, err := password.NewRegistry(cfg)
//	digest, alg, err := reg.Hash("senha123")
//	ok := reg.Verify(alg, "senha123", digest)
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/biduedson/reservas-api/errors"
)

// Hasher produces and checks password digests for one algorithm.
// Implementations are safe for concurrent use.
type Hasher interface {
	// Algorithm returns the tag stored alongside digests from this hasher.
	Algorithm() Algorithm

	// Hash returns the digest of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches digest.
	Verify(password, digest string) bool
}

// --- Salted SHA-512 ---

// SaltedSHA512 digests SHA-512(plaintext + salt) as lowercase hex.
// The concatenation order and encoding must never change: stored digests
// depend on them.
type SaltedSHA512 struct {
	salt string
}

// NewSaltedSHA512 creates the hasher. An empty salt is a Configuration error.
func NewSaltedSHA512(salt string) (*SaltedSHA512, error) {
	if salt == "" {
		return nil, errors.Configuration("auth.password.salt", "salt is required")
	}
	return &SaltedSHA512{salt: salt}, nil
}

// Digest returns the 128-character lowercase hex digest of plaintext.
func (h *SaltedSHA512) Digest(plaintext string) string {
	sum := sha512.Sum512([]byte(plaintext + h.salt))
	return hex.EncodeToString(sum[:])
}

func (h *SaltedSHA512) Algorithm() Algorithm { return AlgorithmSaltedSHA512 }

func (h *SaltedSHA512) Hash(password string) (string, error) {
	return h.Digest(password), nil
}

func (h *SaltedSHA512) Verify(password, digest string) bool {
	return ConstantTimeEqual(h.Digest(password), digest)
}

// ConstantTimeEqual compares two digests without early exit on the first
// differing byte.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// --- Bcrypt ---

// BcryptMaxBytes is the longest password bcrypt accepts.
const BcryptMaxBytes = 72

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher; out-of-range costs fall back to 12.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Algorithm() Algorithm { return AlgorithmBcrypt }

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > BcryptMaxBytes {
		return "", fmt.Errorf("password: maximum length is %d bytes for bcrypt", BcryptMaxBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// --- Argon2id ---

// Argon2Hasher implements Hasher using argon2id.
type Argon2Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// NewArgon2Hasher creates an argon2id hasher with the given cost parameters.
func NewArgon2Hasher(time, memory uint32, threads uint8) *Argon2Hasher {
	return &Argon2Hasher{
		time:    time,
		memory:  memory,
		threads: threads,
		keyLen:  32,
		saltLen: 16,
	}
}

func (h *Argon2Hasher) Algorithm() Algorithm { return AlgorithmArgon2id }

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	// $argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2Hasher) Verify(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}
