package pagination_test

import (
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 6, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(date, createdAt)
	gotDate, gotCreatedAt, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, gotDate.Equal(date))
	assert.True(t, gotCreatedAt.Equal(createdAt))
}

func TestDecodeToken_NotBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-a-token!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("MjAyNi0wNi0xNVQwMDowMDowMFo=")
	assert.Error(t, err)
}
