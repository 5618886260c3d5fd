package services

import (
	"testing"

	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seededCatalog(t *testing.T) *CatalogService {
	t.Helper()
	catalog := NewCatalogService()
	require.NoError(t, catalog.Seed(DefaultStores(), DefaultProducts()))
	return catalog
}

func ptr[T any](v T) *T { return &v }

func TestSeed_RejectsOrphanProduct(t *testing.T) {
	catalog := NewCatalogService()

	err := catalog.Seed(nil, []models.Product{{ID: 1, StoreID: 9, Name: "Wiper"}})

	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestListStores_MinRatingAndSearch(t *testing.T) {
	catalog := seededCatalog(t)

	all := catalog.ListStores(models.StoreFilter{})
	require.Len(t, all, 5)
	assert.Equal(t, uint(1), all[0].ID)

	rated := catalog.ListStores(models.StoreFilter{MinRating: 4.3})
	var names []string
	for _, s := range rated {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Auto Parts Store 1", "Parts and Service Hub", "Quick Fix Auto Service"}, names)

	byLocation := catalog.ListStores(models.StoreFilter{Search: "industrial"})
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Engine Parts World", byLocation[0].Name)
}

func TestSearchProducts(t *testing.T) {
	catalog := seededCatalog(t)

	brakes, err := catalog.SearchProducts(models.ProductFilter{Search: "BRAKE"})
	require.NoError(t, err)
	assert.Len(t, brakes, 4)

	asc, err := catalog.SearchProducts(models.ProductFilter{Sort: "asc"})
	require.NoError(t, err)
	require.Len(t, asc, 12)
	assert.Equal(t, 25.99, asc[0].Price)
	assert.Equal(t, 45.99, asc[len(asc)-1].Price)

	desc, err := catalog.SearchProducts(models.ProductFilter{Sort: "desc", StoreID: 3})
	require.NoError(t, err)
	require.Len(t, desc, 4)
	for _, p := range desc {
		assert.Equal(t, uint(3), p.StoreID)
	}

	_, err = catalog.SearchProducts(models.ProductFilter{Sort: "rating"})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestGetStoreAndProduct(t *testing.T) {
	catalog := seededCatalog(t)

	store, err := catalog.GetStore(2)
	require.NoError(t, err)
	assert.Equal(t, "Speedy Auto Repairs", store.Name)

	product, err := catalog.GetProduct(9)
	require.NoError(t, err)
	assert.Equal(t, "Brake Pads", product.Name)

	_, err = catalog.GetStore(77)
	assert.ErrorIs(t, err, ErrStoreNotFound)
	_, err = catalog.GetProduct(77)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetStore_ReturnsCopy(t *testing.T) {
	catalog := seededCatalog(t)

	store, err := catalog.GetStore(1)
	require.NoError(t, err)
	store.Name = "changed"

	again, err := catalog.GetStore(1)
	require.NoError(t, err)
	assert.Equal(t, "Auto Parts Store 1", again.Name)
}

func validRegistration() models.RegisterStoreRequest {
	return models.RegisterStoreRequest{
		Name:        "Colombo Tyre House",
		Type:        "Tyres",
		Description: "Tyres and alignment",
		Contact:     "+94771234567",
		Email:       "Owner@TyreHouse.lk",
		Password:    "s3cret-pass",
		Location:    "Galle Rd, Colombo",
		Latitude:    ptr(6.9271),
		Longitude:   ptr(79.8612),
	}
}

func TestRegisterStore(t *testing.T) {
	catalog := seededCatalog(t)

	store, err := catalog.RegisterStore(validRegistration())
	require.NoError(t, err)

	assert.Equal(t, uint(6), store.ID)
	assert.Equal(t, "owner@tyrehouse.lk", store.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword(store.PasswordHash, []byte("s3cret-pass")))

	_, err = catalog.RegisterStore(validRegistration())
	assert.ErrorIs(t, err, ErrStoreExists)
}

func TestRegisterStore_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegisterStoreRequest)
		msg    string
	}{
		{"missing name", func(r *models.RegisterStoreRequest) { r.Name = "  " }, "all fields are required"},
		{"missing latitude", func(r *models.RegisterStoreRequest) { r.Latitude = nil }, "all fields are required"},
		{"bad email", func(r *models.RegisterStoreRequest) { r.Email = "owner" }, "invalid email"},
		{"short password", func(r *models.RegisterStoreRequest) { r.Password = "abc" }, "at least 8"},
		{"out of range", func(r *models.RegisterStoreRequest) { r.Longitude = ptr(200.0) }, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := seededCatalog(t)
			req := validRegistration()
			tt.mutate(&req)

			_, err := catalog.RegisterStore(req)

			assert.ErrorIs(t, err, ErrInvalidStore)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Len(t, catalog.ListStores(models.StoreFilter{}), 5)
		})
	}
}

func TestAddProduct(t *testing.T) {
	catalog := seededCatalog(t)

	product, err := catalog.AddProduct(4, models.AddProductRequest{Name: " Spark Plug ", Price: 12.5})
	require.NoError(t, err)
	assert.Equal(t, uint(13), product.ID)
	assert.Equal(t, "Spark Plug", product.Name)
	assert.True(t, product.Available)

	soldOut, err := catalog.AddProduct(4, models.AddProductRequest{Name: "Timing Belt", Price: 80, Available: ptr(false)})
	require.NoError(t, err)
	assert.False(t, soldOut.Available)

	_, err = catalog.AddProduct(99, models.AddProductRequest{Name: "Spark Plug", Price: 12.5})
	assert.ErrorIs(t, err, ErrStoreNotFound)

	_, err = catalog.AddProduct(4, models.AddProductRequest{Name: "Free", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestExists(t *testing.T) {
	catalog := seededCatalog(t)

	assert.NoError(t, catalog.Exists(models.ProductTarget(1)))
	assert.NoError(t, catalog.Exists(models.StoreTarget(5)))
	assert.ErrorIs(t, catalog.Exists(models.ProductTarget(100)), ErrProductNotFound)
	assert.Error(t, catalog.Exists(models.Target{Kind: "garage", ID: 1}))
}
