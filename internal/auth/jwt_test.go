package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters!!"

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, "1h", "30m")
	require.NoError(t, err)
	return issuer
}

func TestTeamTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)
	teamID := uuid.New()
	eventID := uuid.New()

	token, err := issuer.IssueTeamToken(teamID, eventID, "Team Rocket")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, RoleTeam, claims.Role)
	assert.Equal(t, teamID.String(), claims.Subject)
	assert.Equal(t, eventID.String(), claims.EventID)
	assert.Equal(t, "Team Rocket", claims.Name)

	parsed, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, teamID, parsed)
}

func TestAdminTokenRoles(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.IssueAdminToken(uuid.New(), uuid.New(), "Admin", RoleSuperAdmin)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, claims.Role)

	_, err = issuer.IssueAdminToken(uuid.New(), uuid.New(), "Nope", RoleTeam)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := newTestIssuer(t)
	other, err := NewTokenIssuer("another-secret-also-32-characters!!!", "1h", "30m")
	require.NoError(t, err)

	token, err := issuer.IssueTeamToken(uuid.New(), uuid.New(), "x")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "-1m", "30m")
	require.NoError(t, err)

	token, err := issuer.IssueTeamToken(uuid.New(), uuid.New(), "x")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(t)
	_, err := issuer.Verify("not.a.jwt")
	assert.Error(t, err)
}
