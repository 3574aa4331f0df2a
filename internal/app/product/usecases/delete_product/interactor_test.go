package delete_product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/contracts"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-admin/tests/testutil"
)

func setup(t *testing.T, n int) (*delete_product.Interactor, *catalog.Store, *testutil.FakeGateway) {
	t.Helper()
	gw := testutil.NewFakeGateway(testutil.Products(n)...)
	store := catalog.NewStore(gw, 5, nil)
	require.NoError(t, store.Refresh(context.Background()))
	gw.ResetCalls()
	return delete_product.NewInteractor(gw, store, nil), store, gw
}

func TestDeleteProduct_Declined(t *testing.T) {
	interactor, store, gw := setup(t, 3)
	before := store.State()

	var prompt string
	resp, err := interactor.Execute(context.Background(), &delete_product.Request{
		ProductID: 2,
		Confirmer: contracts.ConfirmFunc(func(_ context.Context, p string) (bool, error) {
			prompt = p
			return false, nil
		}),
	})

	require.NoError(t, err)
	assert.False(t, resp.Confirmed)
	assert.Contains(t, prompt, "Product 02")
	assert.Empty(t, gw.Calls())
	assert.Equal(t, before, store.State())
}

func TestDeleteProduct_Confirmed(t *testing.T) {
	interactor, store, gw := setup(t, 3)

	resp, err := interactor.Execute(context.Background(), &delete_product.Request{
		ProductID: 2,
		Confirmer: contracts.Answer(true),
	})

	require.NoError(t, err)
	assert.True(t, resp.Confirmed)
	assert.False(t, resp.SteppedBack)
	assert.Equal(t, []string{testutil.OpDelete, testutil.OpList}, gw.Calls())
	assert.Len(t, store.View().Items, 2)

	_, err = store.Find(2)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProduct_EarlierRefreshDoesNotRestoreRow(t *testing.T) {
	interactor, store, gw := setup(t, 3)
	held, release := gw.HoldNextList()
	defer release()

	done := make(chan error, 1)
	go func() { done <- store.Refresh(context.Background()) }()
	<-held

	resp, err := interactor.Execute(context.Background(), &delete_product.Request{
		ProductID: 1,
		Confirmer: contracts.Answer(true),
	})
	require.NoError(t, err)
	require.NoError(t, resp.RefreshErr)
	assert.Len(t, store.View().Items, 2)

	release()
	require.NoError(t, <-done)

	assert.Len(t, store.View().Items, 2)
	_, err = store.Find(1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProduct_LastRowOnPage(t *testing.T) {
	// 11 products, page size 5: page 3 holds only product 11.
	interactor, store, _ := setup(t, 11)
	require.True(t, store.SetPage(3))
	require.Len(t, store.View().Items, 1)

	resp, err := interactor.Execute(context.Background(), &delete_product.Request{
		ProductID: 11,
		Confirmer: contracts.Answer(true),
	})

	require.NoError(t, err)
	assert.True(t, resp.SteppedBack)

	v := store.View()
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, 2, v.TotalPages)
	assert.Len(t, v.Items, 5)
}

func TestDeleteProduct_NotLastRowStaysOnPage(t *testing.T) {
	interactor, store, _ := setup(t, 12)
	require.True(t, store.SetPage(3))

	resp, err := interactor.Execute(context.Background(), &delete_product.Request{
		ProductID: 11,
		Confirmer: contracts.Answer(true),
	})

	require.NoError(t, err)
	assert.False(t, resp.SteppedBack)
	assert.Equal(t, 3, store.View().Page)
	assert.Len(t, store.View().Items, 1)
}

func TestDeleteProduct_RemoteFailureKeepsRow(t *testing.T) {
	interactor, store, gw := setup(t, 3)
	gw.FailOn(testutil.OpDelete)

	_, err := interactor.Execute(context.Background(), &delete_product.Request{
		ProductID: 1,
		Confirmer: contracts.Answer(true),
	})

	assert.ErrorIs(t, err, domain.ErrRemoteFailure)
	assert.Zero(t, gw.CallCount(testutil.OpList))
	_, err = store.Find(1)
	assert.NoError(t, err)
}

func TestDeleteProduct_Errors(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		interactor, _, gw := setup(t, 1)

		_, err := interactor.Execute(context.Background(), &delete_product.Request{
			ProductID: 99,
			Confirmer: contracts.Answer(true),
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Empty(t, gw.Calls())
	})

	t.Run("confirmer error", func(t *testing.T) {
		interactor, _, gw := setup(t, 1)
		boom := errors.New("prompt closed")

		_, err := interactor.Execute(context.Background(), &delete_product.Request{
			ProductID: 1,
			Confirmer: contracts.ConfirmFunc(func(context.Context, string) (bool, error) {
				return false, boom
			}),
		})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, gw.Calls())
	})
}
