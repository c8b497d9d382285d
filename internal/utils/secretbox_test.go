package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writer-server/internal/utils"
)

const testSecret = "0123456789abcdef0123456789abcdef" // ровно 32 байта

func TestNewSecretBox_KeyLength(t *testing.T) {
	t.Run("rejects short key", func(t *testing.T) {
		_, err := utils.NewSecretBox("too-short")
		assert.ErrorIs(t, err, utils.ErrSecretKeyTooShort)
	})

	t.Run("accepts exact 32 bytes", func(t *testing.T) {
		box, err := utils.NewSecretBox(testSecret)
		require.NoError(t, err)
		assert.NotNil(t, box)
	})

	t.Run("truncates longer key to 32 bytes", func(t *testing.T) {
		boxLong, err := utils.NewSecretBox(testSecret + "extra-tail-ignored")
		require.NoError(t, err)
		boxExact, err := utils.NewSecretBox(testSecret)
		require.NoError(t, err)

		// Шифротексты разных боксов с общим префиксом ключа должны
		// расшифровываться взаимно.
		ct, err := boxLong.Encrypt("api-key-value")
		require.NoError(t, err)
		plain, err := boxExact.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, "api-key-value", plain)
	})
}

func TestSecretBox_RoundTrip(t *testing.T) {
	box, err := utils.NewSecretBox(testSecret)
	require.NoError(t, err)

	cases := []string{
		"sk-proj-abc123",
		"x",
		strings.Repeat("long-key-material-", 20),
		"ключ с юникодом 🔑",
	}
	for _, plaintext := range cases {
		ct, err := box.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, ct)
		assert.Contains(t, ct, ":")

		got, err := box.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestSecretBox_RandomIV(t *testing.T) {
	box, err := utils.NewSecretBox(testSecret)
	require.NoError(t, err)

	// Один и тот же plaintext дает разные шифротексты (случайный IV).
	first, err := box.Encrypt("same-value")
	require.NoError(t, err)
	second, err := box.Encrypt("same-value")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSecretBox_EmptyString(t *testing.T) {
	box, err := utils.NewSecretBox(testSecret)
	require.NoError(t, err)

	ct, err := box.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", ct)

	plain, err := box.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", plain)
}

func TestSecretBox_DecryptMalformed(t *testing.T) {
	box, err := utils.NewSecretBox(testSecret)
	require.NoError(t, err)

	t.Run("missing separator", func(t *testing.T) {
		_, err := box.Decrypt("deadbeefdeadbeef")
		assert.ErrorIs(t, err, utils.ErrCiphertextMalformed)
	})

	t.Run("invalid hex iv", func(t *testing.T) {
		_, err := box.Decrypt("not-hex:deadbeef")
		assert.Error(t, err)
	})

	t.Run("wrong iv length", func(t *testing.T) {
		_, err := box.Decrypt("dead:deadbeefdeadbeefdeadbeefdeadbeef")
		assert.Error(t, err)
	})

	t.Run("ciphertext not block aligned", func(t *testing.T) {
		_, err := box.Decrypt("00112233445566778899aabbccddeeff:dead")
		assert.Error(t, err)
	})
}
