package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("billsplit")
	require.NoError(t, err)

	assert.Equal(t, "billsplit", conf.ServiceName)
	assert.Equal(t, "8080", conf.Server.Port)
	assert.Equal(t, "billsplit", conf.DB.DBName)
	assert.Equal(t, "platform-owner", conf.Protocol.OwnerAddress)
	assert.Equal(t, "billsplit-escrow", conf.Protocol.EscrowAddress)
	assert.Equal(t, uint64(1), conf.Protocol.PlatformFeeRate)
	assert.Equal(t, 24*time.Hour, conf.Protocol.SessionExpiry)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROTOCOL_OWNER_ADDRESS", "owner-wallet")
	t.Setenv("PROTOCOL_PLATFORM_FEE_RATE", "2")
	t.Setenv("PROTOCOL_SESSION_EXPIRY", "1h")

	conf, err := Load("billsplit")
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.Server.Port)
	assert.Equal(t, "owner-wallet", conf.Protocol.OwnerAddress)
	assert.Equal(t, uint64(2), conf.Protocol.PlatformFeeRate)
	assert.Equal(t, time.Hour, conf.Protocol.SessionExpiry)
}
