package app

import (
	"context"

	corestoretypes "cosmossdk.io/core/store"
	dbm "github.com/cosmos/cosmos-db"
)

// KVStoreService adapts a cosmos-db database to the store service the
// keepers consume. An embedding host with its own transactional store
// supplies its own implementation instead; this one backs the test
// harnesses and standalone use.
type KVStoreService struct {
	db dbm.DB
}

func NewKVStoreService(db dbm.DB) KVStoreService {
	return KVStoreService{db: db}
}

func (s KVStoreService) OpenKVStore(_ context.Context) corestoretypes.KVStore {
	return kvStore{db: s.db}
}

type kvStore struct {
	db dbm.DB
}

func (s kvStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key)
}

func (s kvStore) Has(key []byte) (bool, error) {
	return s.db.Has(key)
}

func (s kvStore) Set(key, value []byte) error {
	return s.db.Set(key, value)
}

func (s kvStore) Delete(key []byte) error {
	return s.db.Delete(key)
}

func (s kvStore) Iterator(start, end []byte) (corestoretypes.Iterator, error) {
	return s.db.Iterator(start, end)
}

func (s kvStore) ReverseIterator(start, end []byte) (corestoretypes.Iterator, error) {
	return s.db.ReverseIterator(start, end)
}
