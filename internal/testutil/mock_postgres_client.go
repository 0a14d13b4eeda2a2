package testutil

import (
	"context"

	"github.com/resello/resello/internal/postgres"
)

type txDepthKey struct{}

// TransactionalStore is implemented by the in-memory stores so the mock
// client can roll them back together.
type TransactionalStore interface {
	Snapshot()
	Restore()
	Discard()
}

// MockPostgresClient implements postgres.IClient against a set of in-memory
// stores. WithTx snapshots every registered store before running fn and
// restores all of them if fn fails, so services see the same both-or-neither
// behaviour they get from a real transaction.
type MockPostgresClient struct {
	stores []TransactionalStore
}

var _ postgres.IClient = (*MockPostgresClient)(nil)

func NewMockPostgresClient(stores ...TransactionalStore) *MockPostgresClient {
	return &MockPostgresClient{stores: stores}
}

// Register adds a store to the transactional set.
func (c *MockPostgresClient) Register(store TransactionalStore) {
	c.stores = append(c.stores, store)
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the outer transaction; only the outermost call
	// owns the snapshots.
	if depth, ok := ctx.Value(txDepthKey{}).(int); ok && depth > 0 {
		return fn(context.WithValue(ctx, txDepthKey{}, depth+1))
	}

	for _, store := range c.stores {
		store.Snapshot()
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				for _, store := range c.stores {
					store.Restore()
				}
				panic(r)
			}
		}()
		return fn(context.WithValue(ctx, txDepthKey{}, 1))
	}()

	if err != nil {
		for _, store := range c.stores {
			store.Restore()
		}
		return err
	}

	for _, store := range c.stores {
		store.Discard()
	}
	return nil
}
