package persist

import (
	"context"

	"github.com/nfi-health/assess/internal/contract"
	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// Save implements the RecordStore interface.
func (m *MockRecordStore) Save(ctx context.Context, rec schema.Record, id string) (schema.Record, error) {
	args := m.Called(ctx, rec, id)
	return args.Get(0).(schema.Record), args.Error(1)
}

// Get implements the RecordStore interface.
func (m *MockRecordStore) Get(ctx context.Context, id string) (schema.Record, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.Record), args.Error(1)
}

// List implements the RecordStore interface.
func (m *MockRecordStore) List(ctx context.Context, filter schema.RecordFilter) ([]schema.Record, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
