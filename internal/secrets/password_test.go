package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSFTPPasswordFromKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv(PasswordEnv, "")

	acct := SFTPAccount("deploy", "www.example.com")
	assert.Equal(t, "careers:sftp:deploy@www.example.com", acct)

	_, err := GetSFTPPassword(acct)
	assert.ErrorIs(t, err, ErrNoPassword)

	require.NoError(t, SetSFTPPassword(acct, "s3cret"))
	pw, err := GetSFTPPassword(acct)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	require.NoError(t, DeleteSFTPPassword(acct))
	_, err = GetSFTPPassword(acct)
	assert.ErrorIs(t, err, ErrNoPassword)
}

func TestSFTPPasswordEnvWins(t *testing.T) {
	keyring.MockInit()
	acct := SFTPAccount("deploy", "host")
	require.NoError(t, SetSFTPPassword(acct, "from-keyring"))

	t.Setenv(PasswordEnv, "from-env")
	pw, err := GetSFTPPassword(acct)
	require.NoError(t, err)
	assert.Equal(t, "from-env", pw)
}

func TestSetSFTPPasswordValidates(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, SetSFTPPassword("", "pw"))
	assert.Error(t, SetSFTPPassword("acct", " "))
	assert.Error(t, DeleteSFTPPassword(""))
}
