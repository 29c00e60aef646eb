package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idil/registrar/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "registrar.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    7,
		Email: "lecturer@registrar.edu",
		Role:  models.RoleLecturer,
	}
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := testService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((720 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "lecturer@registrar.edu", claims.Email)
	assert.Equal(t, string(models.RoleLecturer), claims.Role)
	assert.Equal(t, "registrar.test", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenPair_RefreshTokensAreUnique(t *testing.T) {
	svc := testService(time.Hour)
	user := testUser()

	_, first, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	_, second, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testService(time.Hour)
	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "registrar.test",
	})

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := testService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateAndExtractClaims(t *testing.T) {
	svc := testService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestGetRefreshTokenExpiry(t *testing.T) {
	svc := testService(time.Hour)

	expiry := svc.GetRefreshTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), expiry, time.Minute)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer prefix", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "bare token accepted", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header rejected", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
