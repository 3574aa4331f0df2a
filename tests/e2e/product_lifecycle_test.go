package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/tests/testutil"
)

func TestProductLifecycle(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()

	// Empty catalog
	require.NoError(t, services.Store.Load(ctx()))
	assert.Empty(t, services.Controller.Snapshot().View.Items)

	// Create
	services.Controller.StartCreate()
	err := services.Controller.Save(ctx(), domain.ProductPayload{
		Name:        "Test Product 1700000000000",
		Price:       100000,
		Quantity:    10,
		Category:    domain.CategoryElectronics,
		Description: "x",
	})
	require.NoError(t, err)

	snap := services.Controller.Snapshot()
	assert.Equal(t, domain.ModeList, snap.Mode)
	require.Len(t, snap.View.Items, 1)
	created := snap.View.Items[0]
	assert.Equal(t, "Test Product 1700000000000", created.Name)
	assert.Equal(t, 100000.0, created.Price)

	// Edit price
	require.NoError(t, services.Controller.StartEdit(created.ID))
	payload := created.Payload()
	payload.Price = 200000
	require.NoError(t, services.Controller.Save(ctx(), payload))

	snap = services.Controller.Snapshot()
	require.Len(t, snap.View.Items, 1)
	assert.Equal(t, created.ID, snap.View.Items[0].ID)
	assert.Equal(t, 200000.0, snap.View.Items[0].Price)

	// Delete
	require.NoError(t, services.Controller.RequestDelete(ctx(), created.ID, contracts.Answer(true)))

	snap = services.Controller.Snapshot()
	assert.Empty(t, snap.View.Items)
	assert.Empty(t, services.Server.Gateway.Products())

	// Every call carried the session token
	for _, r := range services.Server.Requests() {
		assert.Equal(t, "Bearer "+apiToken, r.Authorization)
		assert.NotEmpty(t, r.RequestID)
	}
}

func TestValidationRejection(t *testing.T) {
	services, cleanup := setupTest(t)
	defer cleanup()
	require.NoError(t, services.Store.Load(ctx()))

	services.Controller.StartCreate()
	err := services.Controller.Save(ctx(), domain.ProductPayload{Name: "", Price: 0, Quantity: 0, Category: ""})

	require.Error(t, err)
	snap := services.Controller.Snapshot()
	assert.Equal(t, domain.ModeCreate, snap.Mode)
	assert.NotEmpty(t, snap.Form.VisibleError(domain.FieldName))
	assert.NotEmpty(t, snap.Form.VisibleError(domain.FieldPrice))
	assert.NotEmpty(t, snap.Form.VisibleError(domain.FieldCategory))

	for _, r := range services.Server.Requests() {
		assert.NotEqual(t, http.MethodPost, r.Method, "no create call may reach the server")
	}
}

func TestDeleteLastRowOnPage(t *testing.T) {
	services, cleanup := setupTest(t, testutil.Products(11)...)
	defer cleanup()
	require.NoError(t, services.Store.Load(ctx()))

	require.True(t, services.Controller.GoToPage(3))
	snap := services.Controller.Snapshot()
	require.Len(t, snap.View.Items, 1)

	require.NoError(t, services.Controller.RequestDelete(ctx(), snap.View.Items[0].ID, contracts.Answer(true)))

	snap = services.Controller.Snapshot()
	assert.Equal(t, 2, snap.View.Page)
	assert.Equal(t, 2, snap.View.TotalPages)
	assert.Len(t, snap.View.Items, 5)
}

func TestSearchShrinkingResultsReturnsToFirstPage(t *testing.T) {
	services, cleanup := setupTest(t, testutil.Products(20)...)
	defer cleanup()
	require.NoError(t, services.Store.Load(ctx()))

	require.True(t, services.Controller.GoToPage(4))
	services.Controller.Search("product 2")

	snap := services.Controller.Snapshot()
	assert.Equal(t, 1, snap.View.Page)
	// Product 02 and Product 20
	assert.Equal(t, 2, snap.View.TotalItems)
}

func TestRemoteFailuresKeepState(t *testing.T) {
	services, cleanup := setupTest(t, testutil.Products(3)...)
	defer cleanup()
	require.NoError(t, services.Store.Load(ctx()))

	t.Run("failed save keeps the form", func(t *testing.T) {
		services.Server.Gateway.FailOn(testutil.OpCreate)
		defer services.Server.Gateway.Recover(testutil.OpCreate)

		services.Controller.StartCreate()
		d := domain.Draft{Name: "Desk lamp", Price: "25", Quantity: "3", Category: "HOME"}
		err := services.Controller.Submit(ctx(), d)
		assert.ErrorIs(t, err, domain.ErrRemoteFailure)

		snap := services.Controller.Snapshot()
		assert.Equal(t, domain.ModeCreate, snap.Mode)
		assert.Equal(t, d, snap.Form.Draft)
		services.Controller.Cancel()
	})

	t.Run("failed delete keeps the row", func(t *testing.T) {
		services.Server.Gateway.FailOn(testutil.OpDelete)
		defer services.Server.Gateway.Recover(testutil.OpDelete)

		err := services.Controller.RequestDelete(ctx(), 1, contracts.Answer(true))
		assert.ErrorIs(t, err, domain.ErrRemoteFailure)
		assert.Len(t, services.Controller.Snapshot().View.Items, 3)
	})

	t.Run("failed refresh keeps the list", func(t *testing.T) {
		services.Server.Gateway.FailOn(testutil.OpList)
		defer services.Server.Gateway.Recover(testutil.OpList)

		assert.Error(t, services.Controller.Refresh(ctx()))
		assert.Len(t, services.Controller.Snapshot().View.Items, 3)
	})
}
