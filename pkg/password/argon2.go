package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Algorithm names reported by Describe.
const (
	Argon2i  = "argon2i"
	Argon2id = "argon2id"
	Bcrypt   = "bcrypt"
	Unknown  = "unknown"
)

var (
	ErrInvalidHash         = errors.New("invalid argon2 hash format")
	ErrIncompatibleHash    = errors.New("hash was not produced by argon2i")
	ErrIncompatibleVersion = errors.New("unsupported argon2 version")
)

// Describer reports the algorithm embedded in a self-describing hash and the
// single algorithm credentials are required to use.
type Describer interface {
	Describe(encoded string) string
	Designated() string
}

// Params configures argon2i hashing. The defaults produce 97-character encodings.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams matches the m=1024,t=384,p=2 encodings already stored in author.authorHash.
func DefaultParams() Params {
	return Params{
		Memory:      1024,
		Iterations:  384,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// EncodedLength returns the length of an encoding produced with p.
func (p Params) EncodedLength() int {
	header := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$", Argon2i, argon2.Version, p.Memory, p.Iterations, p.Parallelism)
	return len(header) +
		base64.RawStdEncoding.EncodedLen(int(p.SaltLength)) + 1 +
		base64.RawStdEncoding.EncodedLen(int(p.KeyLength))
}

// Argon2iHasher hashes and verifies passwords with argon2i and implements Describer.
type Argon2iHasher struct {
	params Params
}

func NewArgon2iHasher(params Params) *Argon2iHasher {
	return &Argon2iHasher{params: params}
}

func (h *Argon2iHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.Key(
		[]byte(password),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		Argon2i, argon2.Version, h.params.Memory, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether password matches the argon2i encoding. Any malformed
// encoding is a mismatch.
func (h *Argon2iHasher) Verify(password, encoded string) bool {
	params, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.Key(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func (h *Argon2iHasher) Describe(encoded string) string { return describeWellFormed(encoded) }

func (h *Argon2iHasher) Designated() string { return Argon2i }

// Policy is the Describer used when no hasher is at hand: it only inspects hashes.
type Policy struct{}

func (Policy) Describe(encoded string) string { return describeWellFormed(encoded) }

func (Policy) Designated() string { return Argon2i }

// Describe returns the algorithm tag of a modular-crypt style hash, or Unknown.
// Only the tag is inspected; Policy and Argon2iHasher also decode argon2i hashes.
func Describe(encoded string) string {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return Argon2id
	case strings.HasPrefix(encoded, "$argon2i$"):
		return Argon2i
	case strings.HasPrefix(encoded, "$2y$"),
		strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"):
		return Bcrypt
	default:
		return Unknown
	}
}

// describeWellFormed is Describe, except that an argon2i tag only counts when
// the rest of the encoding decodes.
func describeWellFormed(encoded string) string {
	algorithm := Describe(encoded)
	if algorithm == Argon2i {
		if _, _, _, err := decode(encoded); err != nil {
			return Unknown
		}
	}
	return algorithm
}

func decode(encoded string) (params *Params, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, nil, ErrInvalidHash
	}
	if parts[1] != Argon2i {
		return nil, nil, nil, ErrIncompatibleHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, nil, nil, ErrIncompatibleVersion
	}

	params = &Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return nil, nil, nil, ErrInvalidHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, err
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, err
	}
	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, nil, ErrInvalidHash
	}
	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(key))
	return params, salt, key, nil
}
