package cryptox

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	// snapshot of argon2id(t=1, m=64MiB, p=4, len=32)
	expectedHex := "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	secret := []byte("secret-password")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashSecret_RoundTrip(t *testing.T) {
	h := HashSecret("Passw0rd!")

	require.True(t, IsHashed(h))
	require.True(t, strings.HasPrefix(h, "$argon2id$v=19$m=65536,t=1,p=4$"))

	ok, err := VerifySecret(h, "Passw0rd!")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySecret(h, "passw0rd!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashSecret_Salted(t *testing.T) {
	assert.NotEqual(t, HashSecret("same"), HashSecret("same"))
}

func TestVerifySecret_Malformed(t *testing.T) {
	bad := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$onlysalt",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	}
	for _, enc := range bad {
		ok, err := VerifySecret(enc, "x")
		assert.ErrorIs(t, err, ErrMalformedHash, enc)
		assert.False(t, ok)
	}
}

func TestIsHashed(t *testing.T) {
	assert.False(t, IsHashed("1234"))
	assert.False(t, IsHashed(""))
	assert.True(t, IsHashed("$argon2id$whatever"))
}

func TestEqualPlain(t *testing.T) {
	assert.True(t, EqualPlain("1234", "1234"))
	assert.False(t, EqualPlain("1234", "12345"))
	assert.False(t, EqualPlain("1234", ""))
}
