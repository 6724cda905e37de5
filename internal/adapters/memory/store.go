// Package memory provides in-memory repositories. They back the test suites
// and any caller that wants a throwaway store.
package memory

import (
	"sort"
	"sync"

	"locus/internal/domain"
	"locus/internal/ports"
)

// ItemStore is an in-memory ports.ItemRepository
type ItemStore struct {
	mu    sync.RWMutex
	items map[domain.ItemID]domain.Item

	// Optional injected failure for Load, Save and List
	Err error
}

var _ ports.ItemRepository = (*ItemStore)(nil)

// NewItemStore creates an empty store
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[domain.ItemID]domain.Item)}
}

func (s *ItemStore) Load(id domain.ItemID) (*domain.Item, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *ItemStore) Save(item domain.Item) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *ItemStore) Delete(id domain.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *ItemStore) List() ([]domain.Item, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	domain.SortItems(out)
	return out, nil
}

func (s *ItemStore) Path(id domain.ItemID) string {
	return "mem://items/" + id.String()
}

// AliasStore is an in-memory ports.AliasRepository
type AliasStore struct {
	mu      sync.RWMutex
	aliases map[string]domain.Alias
}

var _ ports.AliasRepository = (*AliasStore)(nil)

// NewAliasStore creates an empty store
func NewAliasStore() *AliasStore {
	return &AliasStore{aliases: make(map[string]domain.Alias)}
}

func (s *AliasStore) Load(key string) (*domain.Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.aliases[key]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *AliasStore) List() ([]domain.Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Alias, 0, len(s.aliases))
	for _, a := range s.aliases {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *AliasStore) Save(a domain.Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aliases[a.Key] = a
	return nil
}

func (s *AliasStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.aliases, key)
	return nil
}

func (s *AliasStore) DeleteForItem(id domain.ItemID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, a := range s.aliases {
		if a.ItemID == id {
			delete(s.aliases, k)
			n++
		}
	}
	return n, nil
}
