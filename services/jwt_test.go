package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration: 24 * time.Hour,
		jwtSecretKey:        "test-secret",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := testJWTService()

	pair, err := svc.GenerateTokenPair("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(86400), pair.ExpiresIn)

	userID, err := svc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyJWTTokenRejectsExpired(t *testing.T) {
	svc := testJWTService()
	svc.AccessTokenDuration = -time.Hour

	token, err := svc.ToJWT("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestVerifyJWTTokenRejectsWrongSecret(t *testing.T) {
	token, err := testJWTService().ToJWT("user-1")
	require.NoError(t, err)

	other := &JWTService{AccessTokenDuration: 24 * time.Hour, jwtSecretKey: "other-secret"}
	_, err = other.VerifyJWTToken(token)
	assert.Error(t, err)
}

func TestVerifyJWTTokenRejectsGarbage(t *testing.T) {
	_, err := testJWTService().VerifyJWTToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := testJWTService()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"no token", "Bearer", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
