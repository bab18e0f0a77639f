package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPaise(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{850, 85000},
		{0.1 + 0.2, 30},
		{19.999, 2000},
		{12.345, 1235},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPaise(tt.in), "ToPaise(%v)", tt.in)
	}
}

func TestFromPaise(t *testing.T) {
	assert.Equal(t, 8500.0, FromPaise(850000))
	assert.Equal(t, "8500.50", FormatPaise(850050))
	assert.Equal(t, int64(850000), LineTotal(85000, 10))
}

func TestFormatCodes(t *testing.T) {
	assert.Equal(t, "BILL-000042", FormatBillNumber("BILL", 42))
	assert.Equal(t, "BMC-0007", FormatUserCode("BMC", 7))
	assert.Equal(t, "CUS-12345", FormatUserCode("CUS", 12345))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("secret", "feed-backoffice", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "admin@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AdminID)
	assert.Equal(t, "admin", claims.Role)

	other := NewJWTManager("other-secret", "feed-backoffice", time.Hour)
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", "feed-backoffice", -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "admin@example.com", "admin")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
