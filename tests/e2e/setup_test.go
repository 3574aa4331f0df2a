package e2e

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-admin/internal/app/auth"
	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/controller"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/app/product/repo"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/save_product"
	"github.com/light-bringer/procat-admin/internal/pkg/clock"
	"github.com/light-bringer/procat-admin/internal/transport/web"
	"github.com/light-bringer/procat-admin/tests/testutil"
)

const apiToken = "e2e-token"

// Services holds the wired admin client for E2E tests.
type Services struct {
	Controller *controller.Controller
	Store      *catalog.Store
	Session    *auth.TokenSession
	App        *fiber.App

	// Infrastructure
	Server *testutil.ProductServer
	Clock  *clock.MockClock
}

// setupTest wires the client against a REST fake holding seed.
func setupTest(t *testing.T, seed ...domain.Product) (*Services, func()) {
	t.Helper()
	return setupTestWithToken(t, apiToken, seed...)
}

// setupTestWithToken uses token both as the session token and as the one
// the REST fake accepts.
func setupTestWithToken(t *testing.T, token string, seed ...domain.Product) (*Services, func()) {
	t.Helper()

	server, cleanup := testutil.SetupProductServer(t, token, seed...)

	clk := testutil.NewMockClock()
	session := auth.NewTokenSession(token, "", clk, nil)

	gateway := repo.NewHTTPGateway(repo.Options{
		BaseURL: server.URL,
		Tokens:  session,
	})
	store := catalog.NewStore(gateway, 5, nil)
	ctrl := controller.New(
		store,
		save_product.NewInteractor(gateway, store, nil),
		delete_product.NewInteractor(gateway, store, nil),
		nil,
	)

	handler, err := web.NewHandler(ctrl, store, session, nil)
	require.NoError(t, err)

	return &Services{
		Controller: ctrl,
		Store:      store,
		Session:    session,
		App:        web.NewApp(handler, false),
		Server:     server,
		Clock:      clk,
	}, cleanup
}

func ctx() context.Context {
	return context.Background()
}
