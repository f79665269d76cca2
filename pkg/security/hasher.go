package security

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	DefaultBcryptCost = 10
)

// Hasher produces new digests with one algorithm but verifies digests of
// every supported algorithm, so changing the algorithm doesn't lock anyone out
type Hasher struct {
	algorithm  string
	bcryptCost int
	argon      *ArgonHash
}

func NewHasher(algorithm string, bcryptCost int) *Hasher {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}

	return &Hasher{
		algorithm:  algorithm,
		bcryptCost: bcryptCost,
		argon:      NewArgon(),
	}
}

func (h *Hasher) Hash(p string) (string, error) {
	switch h.algorithm {
	case AlgorithmArgon2id:
		return h.argon.GenerateFromPassword(p)
	case AlgorithmBcrypt, "":
		b, err := bcrypt.GenerateFromPassword([]byte(p), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password, %w", err)
		}

		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", h.algorithm)
	}
}

// Verify reports whether p matches digest. Malformed digests never match.
func (h *Hasher) Verify(p, digest string) bool {
	if strings.HasPrefix(digest, argonPrefix) {
		return h.argon.VerifyPasswd(p, digest)
	}

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(p)) == nil
}
