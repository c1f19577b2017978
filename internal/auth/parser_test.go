package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		SessionID: uuid.New(),
		UserID:    uuid.New(),
		OrgID:     uuid.New(),
		Role:      model.UserRoleSales,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParseValidToken(t *testing.T) {
	claims := validClaims()
	parser := NewParser(testSecret)

	parsed, err := parser.Parse(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	require.NoError(t, err)

	principal := parsed.Principal()
	assert.Equal(t, claims.UserID, principal.UserID)
	assert.Equal(t, claims.OrgID, principal.OrgID)
	assert.Equal(t, model.UserRoleSales, principal.Role)
	assert.Nil(t, principal.DriverID)
}

func TestParseRejectsBadTokens(t *testing.T) {
	parser := NewParser(testSecret)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noOrg := validClaims()
	noOrg.OrgID = uuid.Nil

	badRole := validClaims()
	badRole.Role = "ROOT"

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{"other hmac size", sign(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"missing org", sign(t, jwt.SigningMethodHS256, []byte(testSecret), noOrg)},
		{"unknown role", sign(t, jwt.SigningMethodHS256, []byte(testSecret), badRole)},
		{"garbage", "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestParseReportsInvalidPrincipal(t *testing.T) {
	claims := validClaims()
	claims.OrgID = uuid.Nil

	_, err := NewParser(testSecret).Parse(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	assert.ErrorIs(t, err, ErrInvalidPrincipal)
}
