package password

import (
	"fmt"

	"github.com/biduedson/reservas-api/errors"
)

// Algorithm tags a stored digest with the scheme that produced it.
type Algorithm string

const (
	// AlgorithmSaltedSHA512 is SHA-512 over plaintext+application salt, hex encoded.
	AlgorithmSaltedSHA512 Algorithm = "sha512-salted"

	// AlgorithmArgon2id is argon2id with a per-digest random salt in PHC format.
	AlgorithmArgon2id Algorithm = "argon2id"

	// AlgorithmBcrypt is bcrypt with its embedded per-digest salt.
	AlgorithmBcrypt Algorithm = "bcrypt"
)

// Config configures password hashing.
type Config struct {
	// Algorithm selects the scheme used for new digests (default: sha512-salted).
	Algorithm Algorithm `yaml:"algorithm" mapstructure:"algorithm"`

	// Salt is the application-wide secret appended to every plaintext
	// before SHA-512 digesting. Required.
	Salt string `yaml:"salt" mapstructure:"salt"`

	// BcryptCost is the bcrypt cost parameter (default: 12, range: 4-31).
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`

	// Argon2Time is the number of iterations for argon2id (default: 1).
	Argon2Time uint32 `yaml:"argon2_time" mapstructure:"argon2_time"`

	// Argon2Memory is the memory usage in KiB for argon2id (default: 65536 = 64MB).
	Argon2Memory uint32 `yaml:"argon2_memory" mapstructure:"argon2_memory"`

	// Argon2Threads is the parallelism for argon2id (default: 4).
	Argon2Threads uint8 `yaml:"argon2_threads" mapstructure:"argon2_threads"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmSaltedSHA512
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.Argon2Time == 0 {
		c.Argon2Time = 1
	}
	if c.Argon2Memory == 0 {
		c.Argon2Memory = 64 * 1024
	}
	if c.Argon2Threads == 0 {
		c.Argon2Threads = 4
	}
}

// Validate checks the configuration. Failures are Configuration errors.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmSaltedSHA512, AlgorithmArgon2id, AlgorithmBcrypt:
	default:
		return errors.Configuration("auth.password.algorithm",
			fmt.Sprintf("unsupported algorithm %q", c.Algorithm))
	}
	if c.Salt == "" {
		return errors.Configuration("auth.password.salt", "salt is required")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.Configuration("auth.password.bcrypt_cost",
			fmt.Sprintf("must be between 4 and 31 (got: %d)", c.BcryptCost))
	}
	return nil
}
