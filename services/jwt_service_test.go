package services

import (
	"testing"

	"visionguide-http-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "test-secret"})

	token, err := svc.GenerateToken("user-1", "zhangwei")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "zhangwei", claims.Username)
}

func TestExtractClaimsRejectsBadToken(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "test-secret"})

	_, err := svc.ExtractClaims("not-a-token")
	assert.Error(t, err)

	// 用其他密钥签发的令牌无效
	other := NewJWTService(&config.Config{JWTSecretKey: "other-secret"})
	token, err := other.GenerateToken("user-1", "zhangwei")
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}
