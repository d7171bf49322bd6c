package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Name:  "Ada",
		Email: "ada@example.com",
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret")
	user := testUser()

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)

	owner, err := claims.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()

	token, err := NewJWTService("test-secret", WithClock(fixedClock(issuedAt))).Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"just issued", issuedAt, true},
		{"one second before expiry", issuedAt.Add(TokenExpiry - time.Second), true},
		{"at expiry", issuedAt.Add(TokenExpiry), false},
		{"after expiry", issuedAt.Add(TokenExpiry + time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := NewJWTService("test-secret", WithClock(fixedClock(tt.at))).Verify(token)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, user.ID.String(), claims.UserID)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ClaimsCarryOneDayWindow(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewJWTService("test-secret", WithClock(fixedClock(issuedAt)))

	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issuedAt.Add(24*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestJWTService_RejectsTampering(t *testing.T) {
	svc := NewJWTService("test-secret")
	token, err := svc.Issue(testUser())
	require.NoError(t, err)

	flip := func(s string, i int) string {
		b := []byte(s)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		return string(b)
	}
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	tests := []struct {
		name  string
		token string
	}{
		{"different secret", mustIssue(t, NewJWTService("other-secret"))},
		{"altered signature", parts[0] + "." + parts[1] + "." + flip(parts[2], len(parts[2])/2)},
		{"altered payload", parts[0] + "." + flip(parts[1], len(parts[1])/2) + "." + parts[2]},
		{"garbage", "not-a-token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	claims := &Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret").Verify(unsigned)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RequiresExpiry(t *testing.T) {
	claims := &Claims{UserID: uuid.NewString()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret").Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func mustIssue(t *testing.T, svc *JWTService) string {
	t.Helper()
	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	return token
}
