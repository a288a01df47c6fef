package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearExchangeEnv(t *testing.T, prefix string) {
	t.Helper()
	for _, suffix := range []string{"API_KEY", "SECRET_KEY", "BASE_URL", "TESTNET", "TIMEOUT_SECONDS", "MAX_RETRIES", "RECONNECT_DELAY_SECONDS", "MAX_RECONNECT_ATTEMPTS"} {
		key := prefix + suffix
		orig, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, orig)
			}
		})
	}
}

func TestLoadConfig_ReadOnlyModeWhenCredentialsAbsent(t *testing.T) {
	clearExchangeEnv(t, "BINANCE_")
	os.Setenv("BINANCE_TESTNET", "true")
	t.Cleanup(func() { os.Unsetenv("BINANCE_TESTNET") })

	cfg, err := LoadConfig([]string{"binance"})
	require.NoError(t, err)

	ec := cfg.Exchanges["binance"]
	assert.Empty(t, ec.APIKey)
	assert.Nil(t, ec.APISecret)
}

func TestLoadConfig_MismatchedCredentialsIsValidationError(t *testing.T) {
	clearExchangeEnv(t, "BYBIT_")
	os.Setenv("BYBIT_API_KEY", "only-the-key")
	os.Setenv("BYBIT_TESTNET", "true")
	t.Cleanup(func() {
		os.Unsetenv("BYBIT_API_KEY")
		os.Unsetenv("BYBIT_TESTNET")
	})

	_, err := LoadConfig([]string{"bybit"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY and SECRET_KEY must both be set")
}

func TestLoadConfig_MissingBaseURLWithoutTestnetIsValidationError(t *testing.T) {
	clearExchangeEnv(t, "BACKPACK_")

	_, err := LoadConfig([]string{"backpack"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BASE_URL is required")
}

func TestLoadConfig_FullCredentialsPopulateSecret(t *testing.T) {
	clearExchangeEnv(t, "BINANCE_")
	os.Setenv("BINANCE_API_KEY", "key")
	os.Setenv("BINANCE_SECRET_KEY", "secret")
	os.Setenv("BINANCE_BASE_URL", "https://api.binance.com")
	t.Cleanup(func() {
		os.Unsetenv("BINANCE_API_KEY")
		os.Unsetenv("BINANCE_SECRET_KEY")
		os.Unsetenv("BINANCE_BASE_URL")
	})

	cfg, err := LoadConfig([]string{"binance"})
	require.NoError(t, err)

	ec := cfg.Exchanges["binance"]
	require.NotNil(t, ec.APISecret)
	assert.Equal(t, []byte("secret"), ec.APISecret.Expose())
}
