package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vtc-pricing-service/internal/model"
)

var ErrInvalidPrincipal = errors.New("token does not identify a principal")

type Claims struct {
	SessionID uuid.UUID      `json:"sid"`
	UserID    uuid.UUID      `json:"sub"`
	OrgID     uuid.UUID      `json:"org_id"`
	Role      model.UserRole `json:"role"`
	DriverID  *uuid.UUID     `json:"driver_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts verified claims into the caller identity used by services.
func (c *Claims) Principal() model.Principal {
	return model.Principal{
		UserID:   c.UserID,
		OrgID:    c.OrgID,
		Role:     c.Role,
		DriverID: c.DriverID,
	}
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse verifies an HS256 access token. Every pricing call is tenant scoped,
// so tokens without an organization or with an unknown role are rejected.
func (p *Parser) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.OrgID == uuid.Nil || claims.UserID == uuid.Nil {
		return nil, ErrInvalidPrincipal
	}
	switch claims.Role {
	case model.UserRoleAdmin, model.UserRoleSales, model.UserRoleDispatcher, model.UserRoleDriver:
	default:
		return nil, fmt.Errorf("%w: role %q", ErrInvalidPrincipal, claims.Role)
	}

	return claims, nil
}
