package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-admin/internal/config"
	"github.com/light-bringer/procat-admin/tests/testutil"
)

func TestNewServiceOptions_WiresAgainstRemote(t *testing.T) {
	server, cleanup := testutil.SetupProductServer(t, "secret", testutil.Products(7)...)
	defer cleanup()

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	cfg.Auth.Token = "secret"
	cfg.Auth.Username = "admin"

	opts, err := NewServiceOptions(cfg, nil)
	require.NoError(t, err)
	defer opts.Close()

	require.NoError(t, opts.Store.Load(context.Background()))

	v := opts.Store.View()
	assert.Len(t, v.Items, 5)
	assert.Equal(t, 2, v.TotalPages)
	assert.True(t, opts.Session.IsAuthenticated())
	assert.Equal(t, "admin", opts.Session.Username())
}

func TestNewServiceOptions_WrongToken(t *testing.T) {
	server, cleanup := testutil.SetupProductServer(t, "secret")
	defer cleanup()

	cfg := config.Default()
	cfg.API.BaseURL = server.URL
	cfg.Auth.Token = "stale"

	opts, err := NewServiceOptions(cfg, nil)
	require.NoError(t, err)
	defer opts.Close()

	assert.Error(t, opts.Store.Load(context.Background()))
	assert.False(t, opts.Store.View().Loaded)
}
