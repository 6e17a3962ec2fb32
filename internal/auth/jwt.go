// Package auth issues and verifies the JWTs used by the API: team tokens for
// self-service endpoints, admin and super-admin tokens for the bank desk.
package auth

import (
	"fmt"
	"time"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the authorization level carried in a token.
type Role string

const (
	RoleTeam       Role = "team"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Claims is the JWT payload. Subject carries the team or admin ID.
type Claims struct {
	Role    Role   `json:"role"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies tokens.
type TokenIssuer struct {
	secret      []byte
	teamExpiry  time.Duration
	adminExpiry time.Duration
}

// NewTokenIssuer creates a TokenIssuer. Expiry strings follow time.ParseDuration.
func NewTokenIssuer(secret, teamExpiry, adminExpiry string) (*TokenIssuer, error) {
	te, err := time.ParseDuration(teamExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse team expiry: %w", err)
	}
	ae, err := time.ParseDuration(adminExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse admin expiry: %w", err)
	}
	return &TokenIssuer{secret: []byte(secret), teamExpiry: te, adminExpiry: ae}, nil
}

// IssueTeamToken signs a token for a team dashboard session.
func (i *TokenIssuer) IssueTeamToken(teamID, eventID uuid.UUID, name string) (string, error) {
	return i.sign(teamID.String(), eventID.String(), name, RoleTeam, i.teamExpiry)
}

// IssueAdminToken signs a token for an admin or super-admin session.
func (i *TokenIssuer) IssueAdminToken(adminID, eventID uuid.UUID, name string, role Role) (string, error) {
	if role != RoleAdmin && role != RoleSuperAdmin {
		return "", domain.ErrValidation("role must be admin or superadmin")
	}
	return i.sign(adminID.String(), eventID.String(), name, role, i.adminExpiry)
}

func (i *TokenIssuer) sign(subject, eventID, name string, role Role, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:    role,
		EventID: eventID,
		Name:    name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning its claims.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized("invalid token claims")
	}
	return claims, nil
}
