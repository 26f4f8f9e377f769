// Package cryptox hashes and verifies user secrets with argon2id.
//
// Hashes are encoded in the PHC string format so the parameters travel with
// the value:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt b64>$<key b64>
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/safespace/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashPrefix = "$argon2id$"

	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

var ErrMalformedHash = errors.New("malformed secret hash")

var b64 = base64.RawStdEncoding

// DeriveKey stretches secret with salt using argon2id and the package
// parameters.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashSecret returns a salted argon2id hash of secret in PHC form.
func HashSecret(secret string) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := DeriveKey([]byte(secret), salt)
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		hashPrefix, argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key))
}

// IsHashed reports whether stored looks like a value produced by HashSecret.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, hashPrefix)
}

// VerifySecret checks secret against an encoded hash. A malformed hash is
// reported as an error, a mismatch as (false, nil).
func VerifySecret(encoded, secret string) (bool, error) {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrMalformedHash
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := b64.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(secret), salt, iterations, memory, threads, uint32(len(want)))
	defer common.WipeByteArray(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// EqualPlain compares two plaintext secrets in constant time.
func EqualPlain(stored, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1
}
