package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordPolicyOK(t *testing.T) {
	cases := map[string]bool{
		"Secret!Pass":       true,
		"Abcdef1_":          true,
		"Abc!def":           false, // 7 chars
		"Abcdefghijklmno!x": false, // 17 chars
		"secret!pass":       false, // no uppercase
		"SecretPass1":       false, // no special character
		"Äbcdefg!":          false, // Ä is not an ASCII uppercase letter
		"PÄSSWORT":          true,  // Ä is not alphanumeric ASCII
	}
	for pw, want := range cases {
		assert.Equal(t, want, PasswordPolicyOK(pw), pw)
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("Secret!Pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "Secret!Pass"))
	assert.False(t, VerifyPassword(hash, "secret!pass"))

	hash, err = HashPassword("Secret!Pass", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
