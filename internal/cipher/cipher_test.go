package cipher

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, b byte) []byte {
	t.Helper()
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestNew_RejectsWrongKeySize(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		_, err := New(make([]byte, n))
		assert.ErrorIs(t, err, ErrKeySize, "size %d", n)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c, err := New(mustKey(t, 1))
	require.NoError(t, err)

	for _, s := range []string{"", "hunter2", "päss wörd ✓", string(bytes.Repeat([]byte("x"), 4096))} {
		tok, err := c.Encrypt(s)
		require.NoError(t, err)
		assert.NotContains(t, tok, "hunter2")

		got, err := c.Decrypt(tok)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	c, err := New(mustKey(t, 2))
	require.NoError(t, err)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	c1, err := New(mustKey(t, 3))
	require.NoError(t, err)
	c2, err := New(mustKey(t, 4))
	require.NoError(t, err)

	tok, err := c1.Encrypt("secret")
	require.NoError(t, err)

	_, err = c2.Decrypt(tok)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestDecrypt_TamperedOrMalformed(t *testing.T) {
	c, err := New(mustKey(t, 5))
	require.NoError(t, err)

	tok, err := c.Encrypt("secret")
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	for name, in := range map[string]string{
		"tampered":   tampered,
		"not base64": "%%%not-base64%%%",
		"too short":  base64.RawURLEncoding.EncodeToString([]byte("short")),
		"empty":      "",
	} {
		_, err := c.Decrypt(in)
		assert.ErrorIs(t, err, ErrDecryption, name)
	}
}

func TestParseKey(t *testing.T) {
	key := mustKey(t, 7)

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		got, err := ParseKey(enc.EncodeToString(key))
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}

	_, err := ParseKey("")
	assert.Error(t, err)

	_, err = ParseKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.ErrorIs(t, err, ErrKeySize)

	_, err = ParseKey("!!!")
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	enc, err := GenerateKey()
	require.NoError(t, err)

	key, err := ParseKey(enc)
	require.NoError(t, err)

	_, err = New(key)
	assert.NoError(t, err)
}
