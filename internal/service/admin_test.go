package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyShutdownBlocksMutations(t *testing.T) {
	svc := newTestService(t)
	id := createTestSession(t, svc, "merchant-1")
	fund(t, svc, "wallet-3", 2000000)
	require.NoError(t, svc.JoinSession("wallet-3", id, 1150000))

	require.NoError(t, svc.SetEmergencyShutdown(testOwner, true))

	_, err := svc.RegisterMerchant("merchant-2", "Another Restaurant")
	assert.ErrorIs(t, err, ErrShutdownActive)

	_, err = svc.CreateSession("merchant-1", "merchant-1", testBillAmount, testMinContribution, testTipRate)
	assert.ErrorIs(t, err, ErrShutdownActive)

	assert.ErrorIs(t, svc.JoinSession("wallet-3", id, testMinContribution), ErrShutdownActive)
	assert.ErrorIs(t, svc.RaiseDispute("wallet-3", id), ErrShutdownActive)
	assert.ErrorIs(t, svc.ExpireSession("anyone", id), ErrShutdownActive)

	_, err = svc.CompleteSessionPayment("merchant-1", id)
	assert.ErrorIs(t, err, ErrShutdownActive)

	// Owner administrative calls keep working while shut down.
	require.NoError(t, svc.SetBlacklist(testOwner, "merchant-1", true))
	require.NoError(t, svc.SetBlacklist(testOwner, "merchant-1", false))
	require.NoError(t, svc.SetPlatformFeeRate(testOwner, 2))

	// Lifting the shutdown restores normal operation.
	require.NoError(t, svc.SetEmergencyShutdown(testOwner, false))
	_, err = svc.RegisterMerchant("merchant-2", "Another Restaurant")
	require.NoError(t, err)
}

func TestSetEmergencyShutdownUnauthorized(t *testing.T) {
	svc := newTestService(t)

	err := svc.SetEmergencyShutdown("wallet-3", true)
	assert.ErrorIs(t, err, ErrUnauthorized)

	state, err := svc.ContractStatus()
	require.NoError(t, err)
	assert.False(t, state.EmergencyShutdown)
}

func TestSetPlatformFeeRate(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SetPlatformFeeRate(testOwner, 5))

	state, err := svc.ContractStatus()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), state.PlatformFeeRate)
}

func TestSetPlatformFeeRateValidation(t *testing.T) {
	svc := newTestService(t)

	assert.ErrorIs(t, svc.SetPlatformFeeRate(testOwner, 11), ErrInvalidFeeRate)
	assert.ErrorIs(t, svc.SetPlatformFeeRate("wallet-3", 2), ErrUnauthorized)
}

func TestFeeRateChangeAppliesToSettlement(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.SetPlatformFeeRate(testOwner, 2))

	id := createTestSession(t, svc, "merchant-1")
	fund(t, svc, "wallet-3", 1150000)
	require.NoError(t, svc.JoinSession("wallet-3", id, 1150000))

	settlement, err := svc.CompleteSessionPayment("merchant-1", id)
	require.NoError(t, err)
	assert.Equal(t, uint64(23000), settlement.PlatformFee)
	assert.Equal(t, uint64(1127000), settlement.MerchantPayout)
}
