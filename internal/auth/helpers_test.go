package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSigner_RoundTrip(t *testing.T) {
	signer := NewSigner([]byte("secret"), time.Hour)
	id := primitive.NewObjectID()

	token, err := signer.GenerateToken(id, RoleTeacher, "t@spi.edu", "Teacher")
	require.NoError(t, err)

	claims, err := signer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, claims.Role)
	assert.Equal(t, "t@spi.edu", claims.Email)

	got, err := claims.CallerID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSigner_Rejects(t *testing.T) {
	signer := NewSigner([]byte("secret"), time.Hour)
	id := primitive.NewObjectID()

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "garbage", token: func(t *testing.T) string { return "not-a-token" }},
		{name: "other key", token: func(t *testing.T) string {
			tok, err := NewSigner([]byte("other"), time.Hour).GenerateToken(id, RoleAdmin, "", "")
			require.NoError(t, err)
			return tok
		}},
		{name: "expired", token: func(t *testing.T) string {
			tok, err := NewSigner([]byte("secret"), -time.Minute).GenerateToken(id, RoleAdmin, "", "")
			require.NoError(t, err)
			return tok
		}},
		{name: "unknown role", token: func(t *testing.T) string {
			tok, err := signer.GenerateToken(id, Role("student"), "", "")
			require.NoError(t, err)
			return tok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.ParseToken(tt.token(t))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("super_admin")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, r)
	assert.True(t, r.IsAdmin())
	assert.False(t, RoleTeacher.IsAdmin())

	_, err = ParseRole("department_admin")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
