// Package session holds the dataset snapshot shared by all view
// handlers. The snapshot itself is immutable; the holder only swaps the
// pointer wholesale on upload, so concurrent view computations can read
// the same snapshot without locking past the pointer fetch.
package session

import (
	"errors"
	"sync"

	"delivery_insights/pkg/core/dataset"
)

// ErrNoDataset means no workbook has been loaded this session.
var ErrNoDataset = errors.New("no dataset loaded")

type Holder struct {
	mu   sync.RWMutex
	snap *dataset.Snapshot
}

func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the active snapshot, or ErrNoDataset before the first
// load.
func (h *Holder) Current() (*dataset.Snapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snap == nil {
		return nil, ErrNoDataset
	}
	return h.snap, nil
}

// Replace swaps in a freshly loaded snapshot.
func (h *Holder) Replace(snap *dataset.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap = snap
}
