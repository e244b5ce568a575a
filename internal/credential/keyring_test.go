package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))

	v, err := s.Lookup(KeyWalletToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = s.Get(KeyWalletToken)
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)

	require.NoError(t, s.Set(KeyWalletToken, "secret"))
	v, err = s.Lookup(KeyWalletToken)
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{KeyWalletToken}, keys)

	require.NoError(t, s.Delete(KeyWalletToken))
	require.NoError(t, s.Delete(KeyWalletToken))
	v, err = s.Lookup(KeyWalletToken)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSetRejectsUnknownKey(t *testing.T) {
	s := NewStore(keyring.NewArrayKeyring(nil))
	err := s.Set("claude-api-key", "x")
	assert.ErrorIs(t, err, ErrUnknownKey)
}
