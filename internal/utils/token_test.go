package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := utils.IssueToken("cashier-9", "s3cret", time.Hour, "pos-test")
	require.NoError(t, err)

	claims, err := utils.ParseToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "cashier-9", claims.Subject)
	assert.Equal(t, "pos-test", claims.Issuer)

	_, err = utils.ParseToken(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := utils.IssueToken("cashier-9", "s3cret", -time.Minute, "pos-test")
	require.NoError(t, err)

	_, err = utils.ParseToken(token, "s3cret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
