package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRoleEnforcement(t *testing.T) {
	issuer := newTestIssuer(t)
	adminID := uuid.New()
	eventID := uuid.New()

	teamToken, err := issuer.IssueTeamToken(uuid.New(), eventID, "Alpha")
	require.NoError(t, err)
	adminToken, err := issuer.IssueAdminToken(adminID, eventID, "Ops", RoleAdmin)
	require.NoError(t, err)
	superToken, err := issuer.IssueAdminToken(adminID, eventID, "Root", RoleSuperAdmin)
	require.NoError(t, err)

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims must be in context past the middleware")
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})

	do := func(mw func(http.Handler) http.Handler, token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/teams", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec.Code
	}

	adminOnly := Middleware(issuer, RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, do(adminOnly, ""))
	assert.Equal(t, http.StatusUnauthorized, do(adminOnly, "garbage"))
	assert.Equal(t, http.StatusForbidden, do(adminOnly, teamToken))
	assert.Equal(t, http.StatusOK, do(adminOnly, adminToken))
	assert.Equal(t, http.StatusOK, do(adminOnly, superToken), "super admin satisfies admin routes")
	assert.Equal(t, RoleSuperAdmin, gotClaims.Role)

	superOnly := Middleware(issuer, RoleSuperAdmin)
	assert.Equal(t, http.StatusForbidden, do(superOnly, adminToken))
	assert.Equal(t, http.StatusOK, do(superOnly, superToken))

	teamOnly := Middleware(issuer, RoleTeam)
	assert.Equal(t, http.StatusOK, do(teamOnly, teamToken))
	assert.Equal(t, http.StatusForbidden, do(teamOnly, superToken), "super admin is not a team")
}
