package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func generateKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return key
}

func writeAuthorizedKeys(t *testing.T, keys ...gossh.PublicKey) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# managed keys\n\n")
	for _, key := range keys {
		b.Write(gossh.MarshalAuthorizedKey(key))
	}
	path := filepath.Join(t.TempDir(), "authorized_keys")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0600))
	return path
}

func TestIsKeyAuthorized(t *testing.T) {
	allowed := generateKey(t)
	other := generateKey(t)
	path := writeAuthorizedKeys(t, allowed)

	assert.True(t, isKeyAuthorized(allowed, path))
	assert.False(t, isKeyAuthorized(other, path))
}

func TestIsKeyAuthorizedMissingFile(t *testing.T) {
	key := generateKey(t)
	assert.False(t, isKeyAuthorized(key, filepath.Join(t.TempDir(), "nope")))
}

func TestIsKeyAuthorizedSkipsGarbageLines(t *testing.T) {
	allowed := generateKey(t)
	path := filepath.Join(t.TempDir(), "authorized_keys")
	content := "not a key at all\n" + string(gossh.MarshalAuthorizedKey(allowed))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	assert.True(t, isKeyAuthorized(allowed, path))
}

func TestGetKeyFingerprint(t *testing.T) {
	key := generateKey(t)
	fp := getKeyFingerprint(key)

	assert.True(t, strings.HasPrefix(fp, "MD5:"))
	assert.Len(t, strings.Split(strings.TrimPrefix(fp, "MD5:"), ":"), 16)
}
