package ports_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/normsuite/pkg/domain"
	"github.com/aretw0/normsuite/pkg/ports"
)

// MockStore is an in-memory implementation of SuiteStore for testing purposes.
// It round-trips snapshots through JSON to simulate serialization.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

func (m *MockStore) Save(ctx context.Context, suiteID string, snapshot *domain.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	m.data[suiteID] = raw
	return nil
}

func (m *MockStore) Load(ctx context.Context, suiteID string) (*domain.Snapshot, error) {
	raw, ok := m.data[suiteID]
	if !ok {
		return nil, domain.ErrSuiteNotFound
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *MockStore) Delete(ctx context.Context, suiteID string) error {
	delete(m.data, suiteID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestSuiteStore_Contract(t *testing.T) {
	// This test verifies the contract suite itself against a trivial store,
	// so adapter failures can be told apart from contract bugs.
	ports.RunSuiteStoreContract(t, NewMockStore())
}
