// Package persist stores assessment records in SQL databases.
package persist

import (
	"sync"

	"github.com/nfi-health/assess/internal/contract"
)

// RecordStoreManager manages the RecordStore used by the application.
type RecordStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	records      contract.RecordStore
}

var _ contract.StoreManager = &RecordStoreManager{} // Compile-time check

// GetRecordStore returns the record store, or nil if none was initialized.
func (mgr *RecordStoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}
