package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIMAPServerKnownProviders(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"support@gmail.com", "imap.gmail.com:993"},
		{"team@outlook.com", "outlook.office365.com:993"},
		{"Help@ICloud.com", "imap.mail.me.com:993"},
	}

	for _, tt := range tests {
		got, err := ResolveIMAPServer(tt.email)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveIMAPServerInvalidAddress(t *testing.T) {
	_, err := ResolveIMAPServer("not-an-email")
	assert.Error(t, err)

	_, err = ResolveIMAPServer("two@ats@example.com")
	assert.Error(t, err)
}
