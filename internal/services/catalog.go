package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrProductNotFound = errors.New("product not found")
	ErrStoreExists     = errors.New("a store with this email is already registered")
	ErrInvalidStore    = errors.New("invalid store details")
	ErrInvalidProduct  = errors.New("invalid product details")
)

const (
	SortPriceAsc  = "asc"
	SortPriceDesc = "desc"
)

// CatalogService holds stores and their products in memory for the life of
// the process.
type CatalogService struct {
	mu            sync.RWMutex
	stores        map[uint]*models.Store
	products      map[uint]*models.Product
	nextStoreID   uint
	nextProductID uint
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		stores:        make(map[uint]*models.Store),
		products:      make(map[uint]*models.Product),
		nextStoreID:   1,
		nextProductID: 1,
	}
}

// Seed loads stores and products with their existing IDs. Later registrations
// continue numbering after the highest seeded ID.
func (s *CatalogService) Seed(stores []models.Store, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range stores {
		store := stores[i]
		if store.ID == 0 {
			return fmt.Errorf("%w: seeded store %q has no id", ErrInvalidStore, store.Name)
		}
		s.stores[store.ID] = &store
		if store.ID >= s.nextStoreID {
			s.nextStoreID = store.ID + 1
		}
	}

	for i := range products {
		product := products[i]
		if _, ok := s.stores[product.StoreID]; !ok {
			return fmt.Errorf("%w: product %d references store %d", ErrStoreNotFound, product.ID, product.StoreID)
		}
		s.products[product.ID] = &product
		if product.ID >= s.nextProductID {
			s.nextProductID = product.ID + 1
		}
	}

	return nil
}

func (s *CatalogService) ListStores(filter models.StoreFilter) []models.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	stores := make([]models.Store, 0, len(s.stores))
	for _, store := range s.stores {
		if store.SystemRating < filter.MinRating {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(store.Name), search) &&
			!strings.Contains(strings.ToLower(store.Location), search) {
			continue
		}
		stores = append(stores, *store)
	}

	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores
}

func (s *CatalogService) SearchProducts(filter models.ProductFilter) ([]models.Product, error) {
	sortOrder := strings.ToLower(strings.TrimSpace(filter.Sort))
	if sortOrder != "" && sortOrder != SortPriceAsc && sortOrder != SortPriceDesc {
		return nil, fmt.Errorf("%w: sort must be %q or %q", ErrInvalidProduct, SortPriceAsc, SortPriceDesc)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		if filter.StoreID != 0 && product.StoreID != filter.StoreID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		products = append(products, *product)
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.Price != b.Price {
			switch sortOrder {
			case SortPriceAsc:
				return a.Price < b.Price
			case SortPriceDesc:
				return a.Price > b.Price
			}
		}
		return a.ID < b.ID
	})
	return products, nil
}

func (s *CatalogService) GetStore(id uint) (*models.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	store, ok := s.stores[id]
	if !ok {
		return nil, ErrStoreNotFound
	}
	copied := *store
	return &copied, nil
}

func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

// Exists reports whether a feedback target refers to a known product or store.
func (s *CatalogService) Exists(target models.Target) error {
	switch target.Kind {
	case models.TargetProduct:
		_, err := s.GetProduct(target.ID)
		return err
	case models.TargetStore:
		_, err := s.GetStore(target.ID)
		return err
	default:
		return fmt.Errorf("unknown feedback target kind %q", target.Kind)
	}
}

func (s *CatalogService) RegisterStore(req models.RegisterStoreRequest) (*models.Store, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Type = utils.SanitizeString(req.Type)
	req.Contact = utils.SanitizeString(req.Contact)
	req.Email = strings.ToLower(utils.SanitizeString(req.Email))

	if req.Name == "" || req.Type == "" || req.Contact == "" || req.Password == "" ||
		req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidStore)
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidStore)
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidStore)
	}
	if !utils.IsValidCoordinate(*req.Latitude, *req.Longitude) {
		return nil, fmt.Errorf("%w: latitude or longitude out of range", ErrInvalidStore)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.stores {
		if existing.Email != "" && existing.Email == req.Email {
			return nil, ErrStoreExists
		}
	}

	store := &models.Store{
		ID:           s.nextStoreID,
		Name:         req.Name,
		Type:         req.Type,
		Description:  utils.SanitizeString(req.Description),
		Location:     utils.SanitizeString(req.Location),
		Contact:      req.Contact,
		Email:        req.Email,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		PasswordHash: hash,
	}
	s.stores[store.ID] = store
	s.nextStoreID++

	copied := *store
	return &copied, nil
}

func (s *CatalogService) AddProduct(storeID uint, req models.AddProductRequest) (*models.Product, error) {
	req.Name = utils.SanitizeString(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stores[storeID]; !ok {
		return nil, ErrStoreNotFound
	}

	product := &models.Product{
		ID:        s.nextProductID,
		StoreID:   storeID,
		Name:      req.Name,
		Price:     req.Price,
		Available: available,
		Image:     utils.SanitizeString(req.Image),
	}
	s.products[product.ID] = product
	s.nextProductID++

	copied := *product
	return &copied, nil
}
