package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"evtrips/internal/domain"
	"evtrips/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK MANUFACTURER REPOSITORY
// ──────────────────────────────────────────────

// MockManufacturerRepository is a mock implementation of ManufacturerRepository.
type MockManufacturerRepository struct {
	mu            sync.RWMutex
	nextID        int64
	manufacturers map[int64]*domain.Manufacturer

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockManufacturerRepository creates a new mock manufacturer repository.
func NewMockManufacturerRepository() *MockManufacturerRepository {
	return &MockManufacturerRepository{
		manufacturers: make(map[int64]*domain.Manufacturer),
	}
}

func (m *MockManufacturerRepository) Create(ctx context.Context, mf *domain.Manufacturer) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.manufacturers {
		if existing.Name == mf.Name {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	mf.ID = m.nextID
	mf.CreatedAt = time.Now().UTC()
	mf.UpdatedAt = mf.CreatedAt
	copy := *mf
	m.manufacturers[mf.ID] = &copy
	return nil
}

func (m *MockManufacturerRepository) GetByName(ctx context.Context, name string) (*domain.Manufacturer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mf := range m.manufacturers {
		if mf.Name == name {
			copy := *mf
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockManufacturerRepository) GetByID(ctx context.Context, id int64) (*domain.Manufacturer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mf, ok := m.manufacturers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *mf
	return &copy, nil
}

func (m *MockManufacturerRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.manufacturers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.manufacturers, id)
	return nil
}

// Count returns the number of manufacturers (for test assertions).
func (m *MockManufacturerRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.manufacturers)
}

// ──────────────────────────────────────────────
// MOCK VEHICLE MODEL REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleModelRepository is a mock implementation of VehicleModelRepository.
type MockVehicleModelRepository struct {
	mu     sync.RWMutex
	nextID int64
	models map[int64]*domain.VehicleModel

	// Counters for verification
	CreateCallCount      int32
	UpdateAttrsCallCount int32

	// Error injection
	CreateError error
}

// NewMockVehicleModelRepository creates a new mock vehicle model repository.
func NewMockVehicleModelRepository() *MockVehicleModelRepository {
	return &MockVehicleModelRepository{
		models: make(map[int64]*domain.VehicleModel),
	}
}

func (m *MockVehicleModelRepository) Create(ctx context.Context, vm *domain.VehicleModel) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.models {
		if existing.ManufacturerID == vm.ManufacturerID && existing.Name == vm.Name {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	vm.ID = m.nextID
	vm.CreatedAt = time.Now().UTC()
	vm.UpdatedAt = vm.CreatedAt
	copy := *vm
	copy.Manufacturer = nil
	m.models[vm.ID] = &copy
	return nil
}

func (m *MockVehicleModelRepository) GetByNaturalKey(ctx context.Context, manufacturerID int64, name string) (*domain.VehicleModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, vm := range m.models {
		if vm.ManufacturerID == manufacturerID && vm.Name == name {
			copy := *vm
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleModelRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vm, ok := m.models[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vm
	return &copy, nil
}

func (m *MockVehicleModelRepository) UpdateAttrs(ctx context.Context, id int64, bodyType domain.BodyType, segment domain.Segment) error {
	atomic.AddInt32(&m.UpdateAttrsCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	vm, ok := m.models[id]
	if !ok {
		return repository.ErrNotFound
	}
	vm.BodyType = bodyType
	vm.Segment = segment
	vm.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockVehicleModelRepository) CountByManufacturer(ctx context.Context, manufacturerID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, vm := range m.models {
		if vm.ManufacturerID == manufacturerID {
			count++
		}
	}
	return count, nil
}

func (m *MockVehicleModelRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.models[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.models, id)
	return nil
}

// Count returns the number of models (for test assertions).
func (m *MockVehicleModelRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.models)
}

// GetModel returns a model by ID for test assertions.
func (m *MockVehicleModelRepository) GetModel(id int64) *domain.VehicleModel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.models[id]
}

// ──────────────────────────────────────────────
// MOCK VEHICLE VARIANT REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleVariantRepository is a mock implementation of VehicleVariantRepository.
type MockVehicleVariantRepository struct {
	mu       sync.RWMutex
	nextID   int64
	variants map[int64]*domain.VehicleVariant

	// Counters for verification
	CreateCallCount      int32
	UpdatePriceCallCount int32

	// Error injection
	CreateError error
}

// NewMockVehicleVariantRepository creates a new mock vehicle variant repository.
func NewMockVehicleVariantRepository() *MockVehicleVariantRepository {
	return &MockVehicleVariantRepository{
		variants: make(map[int64]*domain.VehicleVariant),
	}
}

func (m *MockVehicleVariantRepository) Create(ctx context.Context, v *domain.VehicleVariant) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.variants {
		if existing.ModelID == v.ModelID && existing.BatteryKwh == v.BatteryKwh &&
			existing.RangeKm == v.RangeKm && existing.ChargingType == v.ChargingType {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	v.ID = m.nextID
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
	copy := *v
	copy.Model = nil
	m.variants[v.ID] = &copy
	return nil
}

func (m *MockVehicleVariantRepository) GetByNaturalKey(ctx context.Context, modelID int64, batteryKwh, rangeKm int, chargingType domain.ChargingType) (*domain.VehicleVariant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.variants {
		if v.ModelID == modelID && v.BatteryKwh == batteryKwh &&
			v.RangeKm == rangeKm && v.ChargingType == chargingType {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleVariantRepository) GetByID(ctx context.Context, id int64) (*domain.VehicleVariant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.variants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *v
	return &copy, nil
}

func (m *MockVehicleVariantRepository) UpdatePrice(ctx context.Context, id int64, priceEur float64) error {
	atomic.AddInt32(&m.UpdatePriceCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.PriceEur = priceEur
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockVehicleVariantRepository) CountByModel(ctx context.Context, modelID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, v := range m.variants {
		if v.ModelID == modelID {
			count++
		}
	}
	return count, nil
}

func (m *MockVehicleVariantRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.variants[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.variants, id)
	return nil
}

// Count returns the number of variants (for test assertions).
func (m *MockVehicleVariantRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.variants)
}

// GetVariant returns a variant by ID for test assertions.
func (m *MockVehicleVariantRepository) GetVariant(id int64) *domain.VehicleVariant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.variants[id]
}

// ──────────────────────────────────────────────
// MOCK LOCATION REPOSITORY
// ──────────────────────────────────────────────

// MockLocationRepository is a mock implementation of LocationRepository.
type MockLocationRepository struct {
	mu        sync.RWMutex
	nextID    int64
	locations map[int64]*domain.Location

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockLocationRepository creates a new mock location repository.
func NewMockLocationRepository() *MockLocationRepository {
	return &MockLocationRepository{
		locations: make(map[int64]*domain.Location),
	}
}

func (m *MockLocationRepository) Create(ctx context.Context, l *domain.Location) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.locations {
		if existing.City == l.City && existing.Country == l.Country {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	l.ID = m.nextID
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt
	copy := *l
	m.locations[l.ID] = &copy
	return nil
}

func (m *MockLocationRepository) GetByCityCountry(ctx context.Context, city, country string) (*domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.locations {
		if l.City == city && l.Country == country {
			copy := *l
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.locations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *l
	return &copy, nil
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.locations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.locations, id)
	return nil
}

// Count returns the number of locations (for test assertions).
func (m *MockLocationRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.locations)
}

// HasLocation checks whether a (city, country) row exists.
func (m *MockLocationRepository) HasLocation(city, country string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.locations {
		if l.City == city && l.Country == country {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu     sync.RWMutex
	nextID int64
	trips  map[int64]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[int64]*domain.Trip),
	}
}

func (m *MockTripRepository) Create(ctx context.Context, t *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	copy := *t
	copy.Variant = nil
	copy.Origin = nil
	copy.Destination = nil
	m.trips[t.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *t
	return &copy, nil
}

func (m *MockTripRepository) FindIdentical(ctx context.Context, tripDate time.Time, variantID, originID, destinationID int64, distanceKm float64) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.trips {
		if t.TripDate.Equal(tripDate) && t.VehicleVariantID == variantID &&
			t.OriginID == originID && t.DestinationID == destinationID &&
			t.DistanceKm == distanceKm {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockTripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, t *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[t.ID]; !ok {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	copy := *t
	copy.Variant = nil
	copy.Origin = nil
	copy.Destination = nil
	m.trips[t.ID] = &copy
	return nil
}

func (m *MockTripRepository) Delete(ctx context.Context, id int64) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func (m *MockTripRepository) CountByVariant(ctx context.Context, variantID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, t := range m.trips {
		if t.VehicleVariantID == variantID {
			count++
		}
	}
	return count, nil
}

func (m *MockTripRepository) CountByLocation(ctx context.Context, locationID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, t := range m.trips {
		if t.OriginID == locationID || t.DestinationID == locationID {
			count++
		}
	}
	return count, nil
}

// Count returns the number of trips (for test assertions).
func (m *MockTripRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// GetTrip returns a trip by ID for test assertions.
func (m *MockTripRepository) GetTrip(id int64) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK STORE
// ──────────────────────────────────────────────

// MockStore is a mock implementation of repository.Store. It has no real
// transaction semantics: fn runs against the same shared mocks.
type MockStore struct {
	repos repository.Repos

	// Counters for verification
	RunInTxCallCount int32
}

// NewMockStore creates a store over the given mock repositories.
func NewMockStore(repos repository.Repos) *MockStore {
	return &MockStore{repos: repos}
}

func (s *MockStore) Repos() repository.Repos {
	return s.repos
}

func (s *MockStore) RunInTx(ctx context.Context, fn func(repository.Repos) error) error {
	atomic.AddInt32(&s.RunInTxCallCount, 1)
	return fn(s.repos)
}

// Ensure mocks satisfy the repository interfaces.
var (
	_ repository.ManufacturerRepository   = (*MockManufacturerRepository)(nil)
	_ repository.VehicleModelRepository   = (*MockVehicleModelRepository)(nil)
	_ repository.VehicleVariantRepository = (*MockVehicleVariantRepository)(nil)
	_ repository.LocationRepository       = (*MockLocationRepository)(nil)
	_ repository.TripRepository           = (*MockTripRepository)(nil)
	_ repository.Store                    = (*MockStore)(nil)
)
