package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/videohub/pkg/apperror"
	"anoa.com/videohub/pkg/tokenstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTokens(t *testing.T) (*TokenManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewTokenManager("secret", time.Minute, time.Hour, tokenstore.New(rdb)), mr
}

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokenManager("secret", time.Minute, time.Hour, nil)
	userID := uuid.New()

	access, err := tokens.Issue(userID, TokenAccess)
	require.NoError(t, err)

	claims, err := tokens.Parse(context.Background(), access, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, TokenAccess, claims.Type)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseRejectsWrongType(t *testing.T) {
	tokens := NewTokenManager("secret", time.Minute, time.Hour, nil)
	refresh, err := tokens.Issue(uuid.New(), TokenRefresh)
	require.NoError(t, err)

	_, err = tokens.Parse(context.Background(), refresh, TokenAccess)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := NewTokenManager("other", time.Minute, time.Hour, nil)
	token, err := other.Issue(uuid.New(), TokenAccess)
	require.NoError(t, err)

	tokens := NewTokenManager("secret", time.Minute, time.Hour, nil)
	_, err = tokens.Parse(context.Background(), token, TokenAccess)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = tokens.Parse(context.Background(), "garbage", TokenAccess)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{Type: TokenAccess, RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tokens := NewTokenManager("secret", time.Minute, time.Hour, nil)
	_, err = tokens.Parse(context.Background(), unsigned, TokenAccess)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("secret", time.Minute, time.Hour, nil)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	token, err := tokens.Issue(uuid.New(), TokenAccess)
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(context.Background(), token, TokenAccess)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestRevoke(t *testing.T) {
	tokens, mr := newRedisTokens(t)
	token, err := tokens.Issue(uuid.New(), TokenAccess)
	require.NoError(t, err)

	claims, err := tokens.Parse(context.Background(), token, TokenAccess)
	require.NoError(t, err)
	require.NoError(t, tokens.Revoke(context.Background(), claims))

	_, err = tokens.Parse(context.Background(), token, TokenAccess)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	key := "auth:revoked:" + claims.ID
	assert.True(t, mr.Exists(key))
	assert.LessOrEqual(t, mr.TTL(key), time.Minute)
}

func TestParseSurfacesStoreFailure(t *testing.T) {
	tokens, mr := newRedisTokens(t)
	token, err := tokens.Issue(uuid.New(), TokenAccess)
	require.NoError(t, err)

	mr.Close()
	_, err = tokens.Parse(context.Background(), token, TokenAccess)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrUnauthorized)
}
