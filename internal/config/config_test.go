package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Host)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestLoad_RejectsBadPort(t *testing.T) {
	for _, port := range []string{"nope", "-1", "0", "70000"} {
		t.Setenv("PORT", port)
		_, err := Load()
		require.Error(t, err, "PORT=%s", port)
	}
}
