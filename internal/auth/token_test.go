package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/siteops-admin/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	principal := model.Principal{UserID: uuid.New(), CompanyID: uuid.New(), Role: model.UserRoleManager}
	issuer := NewIssuer("secret", time.Hour)

	token, expiresAt, err := issuer.Issue(principal)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	parsed, err := NewParser("secret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, parsed)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewIssuer("secret", time.Hour).Issue(model.Principal{
		UserID: uuid.New(), CompanyID: uuid.New(), Role: model.UserRoleAdmin,
	})
	require.NoError(t, err)

	_, err = NewParser("other").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(model.Principal{UserID: uuid.New(), CompanyID: uuid.New(), Role: model.UserRoleViewer})
	require.NoError(t, err)

	_, err = NewParser("secret").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewParser("secret").Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
