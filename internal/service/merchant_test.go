package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMerchant(t *testing.T) {
	svc := newTestService(t)

	merchant, err := svc.RegisterMerchant("wallet-1", "Test Restaurant")
	require.NoError(t, err)

	assert.Equal(t, "wallet-1", merchant.Address)
	assert.Equal(t, "Test Restaurant", merchant.Name)
	assert.True(t, merchant.Verified)
	assert.False(t, merchant.Blacklisted)
	assert.Equal(t, uint64(0), merchant.TotalSessions)

	stored, err := svc.GetMerchant("wallet-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Restaurant", stored.Name)
}

func TestRegisterMerchantDuplicate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterMerchant("wallet-1", "Test Restaurant")
	require.NoError(t, err)

	// Rejected regardless of argument values, always with the same error.
	_, err = svc.RegisterMerchant("wallet-1", "Another Name")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	_, err = svc.RegisterMerchant("wallet-1", "Test Restaurant")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	_, err = svc.RegisterMerchant("wallet-1", "")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterMerchantInvalidName(t *testing.T) {
	tests := []struct {
		name         string
		merchantName string
		wantErr      error
	}{
		{"empty", "", ErrInvalidName},
		{"too long", strings.Repeat("A", 51), ErrInvalidName},
		{"max length ok", strings.Repeat("A", 50), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.RegisterMerchant("wallet-1", tt.merchantName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetBlacklist(t *testing.T) {
	svc := newTestService(t)
	registerMerchant(t, svc, "wallet-1")

	require.NoError(t, svc.SetBlacklist(testOwner, "wallet-1", true))

	merchant, err := svc.GetMerchant("wallet-1")
	require.NoError(t, err)
	assert.True(t, merchant.Blacklisted)

	require.NoError(t, svc.SetBlacklist(testOwner, "wallet-1", false))
	merchant, err = svc.GetMerchant("wallet-1")
	require.NoError(t, err)
	assert.False(t, merchant.Blacklisted)
}

func TestSetBlacklistUnauthorized(t *testing.T) {
	svc := newTestService(t)
	registerMerchant(t, svc, "wallet-1")

	err := svc.SetBlacklist("wallet-2", "wallet-1", true)
	assert.ErrorIs(t, err, ErrUnauthorized)

	merchant, err := svc.GetMerchant("wallet-1")
	require.NoError(t, err)
	assert.False(t, merchant.Blacklisted)
}

func TestSetBlacklistNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.SetBlacklist(testOwner, "nobody", true)
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestGetMerchantNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetMerchant("nobody")
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}
