package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-admin/internal/app/product/catalog"
	"github.com/light-bringer/procat-admin/internal/app/product/domain"
	"github.com/light-bringer/procat-admin/tests/testutil"
)

func loadedStore(t *testing.T, n int) (*catalog.Store, *testutil.FakeGateway) {
	t.Helper()
	gw := testutil.NewFakeGateway(testutil.Products(n)...)
	store := catalog.NewStore(gw, 5, nil)
	require.NoError(t, store.Refresh(context.Background()))
	return store, gw
}

func TestStore_Initial(t *testing.T) {
	store := catalog.NewStore(testutil.NewFakeGateway(), 0, nil)

	v := store.View()
	assert.False(t, v.Loaded)
	assert.Empty(t, v.Items)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 5, store.State().PageSize)
}

func TestStore_Refresh(t *testing.T) {
	store, gw := loadedStore(t, 12)

	v := store.View()
	assert.True(t, v.Loaded)
	assert.Len(t, v.Items, 5)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 12, v.TotalItems)

	t.Run("failure keeps the previous list", func(t *testing.T) {
		require.True(t, store.SetPage(2))
		gw.FailOn(testutil.OpList)
		defer gw.Recover(testutil.OpList)

		err := store.Refresh(context.Background())
		assert.ErrorIs(t, err, domain.ErrRemoteFailure)

		v := store.View()
		assert.Equal(t, 2, v.Page)
		assert.Equal(t, 12, v.TotalItems)
		assert.Len(t, store.State().FullList, 12)
	})
}

func TestStore_SetPage(t *testing.T) {
	store, _ := loadedStore(t, 12)

	assert.True(t, store.SetPage(3))
	v := store.View()
	assert.Equal(t, 3, v.Page)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "Product 11", v.Items[0].Name)

	assert.False(t, store.SetPage(4))
	assert.False(t, store.SetPage(0))
	assert.Equal(t, 3, store.View().Page)
}

func TestStore_SetSearchTerm(t *testing.T) {
	store, _ := loadedStore(t, 12)
	require.True(t, store.SetPage(3))

	store.SetSearchTerm("product 1")

	v := store.View()
	assert.Equal(t, 1, v.Page, "search resets to the first page")
	assert.Equal(t, "product 1", v.SearchTerm)
	// Product 10, 11, 12
	assert.Equal(t, 3, v.TotalItems)
	assert.Len(t, store.State().FullList, 12, "search never shrinks the full list")
}

func TestStore_StepBack(t *testing.T) {
	store, _ := loadedStore(t, 6)

	assert.False(t, store.StepBack(), "already on page 1")

	require.True(t, store.SetPage(2))
	assert.True(t, store.StepBack())
	assert.Equal(t, 1, store.View().Page)
}

func TestStore_RefreshCorrectsOutOfRangePage(t *testing.T) {
	store, gw := loadedStore(t, 6)
	require.True(t, store.SetPage(2))

	require.NoError(t, gw.Delete(context.Background(), 6))
	require.NoError(t, store.Refresh(context.Background()))

	v := store.View()
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 1, v.TotalPages)
	assert.Len(t, v.Items, 5)
}

func TestStore_StaleRefreshIsDropped(t *testing.T) {
	t.Run("overtaken by a newer refresh", func(t *testing.T) {
		store, gw := loadedStore(t, 3)
		held, release := gw.HoldNextList()
		defer release()

		done := make(chan error, 1)
		go func() { done <- store.Refresh(context.Background()) }()
		<-held

		require.NoError(t, gw.Delete(context.Background(), 1))
		require.NoError(t, store.Refresh(context.Background()))
		assert.Len(t, store.View().Items, 2)

		release()
		require.NoError(t, <-done)

		assert.Len(t, store.View().Items, 2)
		_, err := store.Find(1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("invalidated by a write", func(t *testing.T) {
		gw := testutil.NewFakeGateway(testutil.Products(3)...)
		store := catalog.NewStore(gw, 5, nil)
		held, release := gw.HoldNextList()
		defer release()

		done := make(chan error, 1)
		go func() { done <- store.Refresh(context.Background()) }()
		<-held

		require.NoError(t, gw.Delete(context.Background(), 1))
		store.Invalidate()

		release()
		require.NoError(t, <-done)

		v := store.View()
		assert.False(t, v.Loaded, "list fetched before the write is not applied")
		assert.Empty(t, v.Items)

		require.NoError(t, store.Refresh(context.Background()))
		assert.Len(t, store.View().Items, 2, "a refresh started after the write applies")
	})
}

func TestStore_Find(t *testing.T) {
	store, _ := loadedStore(t, 3)

	p, err := store.Find(2)
	require.NoError(t, err)
	assert.Equal(t, "Product 02", p.Name)

	_, err = store.Find(99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStore_ViewIsACopy(t *testing.T) {
	store, _ := loadedStore(t, 3)

	v := store.View()
	v.Items[0].Name = "changed"

	assert.Equal(t, "Product 01", store.View().Items[0].Name)
}

func TestStore_Categories(t *testing.T) {
	t.Run("fetched once", func(t *testing.T) {
		gw := testutil.NewFakeGateway()
		gw.SetCategories(domain.CategoryFood, domain.CategoryHome)
		store := catalog.NewStore(gw, 5, nil)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, []domain.Category{domain.CategoryFood, domain.CategoryHome},
					store.Categories(context.Background()))
			}()
		}
		wg.Wait()

		store.Categories(context.Background())
		assert.LessOrEqual(t, gw.CallCount(testutil.OpCategories), 8)
		calls := gw.CallCount(testutil.OpCategories)
		store.Categories(context.Background())
		assert.Equal(t, calls, gw.CallCount(testutil.OpCategories), "cached after success")
	})

	t.Run("falls back to the built-in list", func(t *testing.T) {
		gw := testutil.NewFakeGateway()
		gw.FailOn(testutil.OpCategories)
		store := catalog.NewStore(gw, 5, nil)

		assert.Equal(t, domain.Categories(), store.Categories(context.Background()))
	})

	t.Run("empty answer is cached as the built-in list", func(t *testing.T) {
		gw := testutil.NewFakeGateway()
		gw.SetCategories()
		store := catalog.NewStore(gw, 5, nil)

		assert.Equal(t, domain.Categories(), store.Categories(context.Background()))
		assert.Equal(t, domain.Categories(), store.Categories(context.Background()))
		assert.Equal(t, 1, gw.CallCount(testutil.OpCategories))
	})
}

func TestStore_Load(t *testing.T) {
	gw := testutil.NewFakeGateway(testutil.Products(2)...)
	gw.FailOn(testutil.OpCategories)
	store := catalog.NewStore(gw, 5, nil)

	require.NoError(t, store.Load(context.Background()), "category failure is not fatal")
	assert.Len(t, store.View().Items, 2)

	gw.FailOn(testutil.OpList)
	assert.ErrorIs(t, store.Load(context.Background()), domain.ErrRemoteFailure)
}
