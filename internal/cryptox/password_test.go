package cryptox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHashers(t *testing.T) map[string]PasswordHasher {
	t.Helper()
	b, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return map[string]PasswordHasher{
		AlgorithmBcrypt: b,
		AlgorithmArgon2id: NewArgon2Hasher(Argon2Params{
			Memory: 64, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32,
		}),
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	passwords := []string{"p1", "correct horse battery staple", "пароль", strings.Repeat("x", 72)}

	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			for _, pw := range passwords {
				hash, err := h.Hash([]byte(pw))
				require.NoError(t, err)
				assert.NotContains(t, hash, pw)

				assert.True(t, h.Verify([]byte(pw), hash), "password %q must verify", pw)
				assert.False(t, h.Verify([]byte(pw+"!"), hash))
				assert.False(t, h.Verify([]byte("wrong"), hash))
			}
		})
	}
}

func TestHasher_SaltedOutputDiffers(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			a, err := h.Hash([]byte("same"))
			require.NoError(t, err)
			b, err := h.Hash([]byte("same"))
			require.NoError(t, err)
			assert.NotEqual(t, a, b)
		})
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := h.Hash(nil)
			require.ErrorIs(t, err, ErrEmptyPassword)
		})
	}
}

func TestHasher_MalformedHashNeverVerifies(t *testing.T) {
	bad := []string{
		"",
		"plaintext",
		"$2a$10$short",
		"$argon2i$v=19$m=64,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=64,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=1,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=abc,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$???$a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdA$???",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdA$",
	}

	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			for _, hash := range bad {
				assert.NotPanics(t, func() {
					assert.False(t, h.Verify([]byte("p1"), hash), "hash %q", hash)
				})
			}
		})
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash(bytes.Repeat([]byte("a"), 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestBcryptHasher_LongerCandidateDoesNotVerify(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	pw := strings.Repeat("x", 72)
	hash, err := h.Hash([]byte(pw))
	require.NoError(t, err)

	assert.True(t, h.Verify([]byte(pw), hash))
	assert.False(t, h.Verify([]byte(pw+"!"), hash))
	assert.False(t, h.Verify([]byte(pw+"anything else"), hash))
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	h, err := NewBcryptHasher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, h.cost)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	require.Error(t, err)
}

func TestArgon2Hasher_Format(t *testing.T) {
	h := NewArgon2Hasher(Argon2Params{Memory: 64, Time: 2, Threads: 1, SaltLen: 8, KeyLen: 16})
	hash, err := h.Hash([]byte("p1"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=2,p=1$"), hash)
}

func TestArgon2Hasher_VerifiesWithStoredParams(t *testing.T) {
	old := NewArgon2Hasher(Argon2Params{Memory: 64, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32})
	hash, err := old.Hash([]byte("p1"))
	require.NoError(t, err)

	current := NewArgon2Hasher(Argon2Params{Memory: 128, Time: 3, Threads: 2, SaltLen: 16, KeyLen: 32})
	assert.True(t, current.Verify([]byte("p1"), hash))
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("bcrypt", bcrypt.MinCost)
	require.NoError(t, err)
	assert.IsType(t, &BcryptHasher{}, h)

	h, err = NewPasswordHasher("ARGON2ID", 0)
	require.NoError(t, err)
	assert.IsType(t, &Argon2Hasher{}, h)

	_, err = NewPasswordHasher("md5", 0)
	require.Error(t, err)
}
