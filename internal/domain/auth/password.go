package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
)

// argon2idParams defines OWASP minimum parameters for Argon2id.
// Memory: 47 MiB, Iterations: 1, Parallelism: 1
var argon2idParams = &argon2id.Params{
	Memory:      47 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword returns an Argon2id hash of the password in PHC format.
// Format: $argon2id$v=19$m=48128,t=1,p=1$<salt>$<hash>
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2idParams)
}

// IsHashed reports whether stored is an Argon2id PHC-format hash. Anything
// else is treated as a legacy plaintext password imported from an older
// dataset.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$argon2id$")
}

// VerifyPassword checks password against the stored value.
//
// Argon2id hashes are verified with the library; legacy plaintext values are
// compared in constant time. Plaintext storage is a known weakness of the
// original dataset format and only survives until the first successful
// login, when callers should upgrade the record via HashPassword.
func VerifyPassword(password, stored string) (bool, error) {
	if IsHashed(stored) {
		match, err := argon2id.ComparePasswordAndHash(password, stored)
		if err != nil {
			return false, fmt.Errorf("verify password: %w", err)
		}
		return match, nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
}
