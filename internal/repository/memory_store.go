package repository

import (
	"context"
	"sync"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

// MemoryStore is an in-memory ReciboStore for tests and local development
type MemoryStore struct {
	mu      sync.RWMutex
	recibos map[string]*domain.Recibo // keyed by numero
	shares  map[string]string         // share_id -> numero
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recibos: make(map[string]*domain.Recibo),
		shares:  make(map[string]string),
	}
}

// FindByNumero finds a receipt by its number
func (s *MemoryStore) FindByNumero(_ context.Context, numero string) (*domain.Recibo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recibos[numero]
	if !ok {
		return nil, nil
	}
	copia := *rec
	return &copia, nil
}

// FindByShareID finds a receipt by its public share identifier
func (s *MemoryStore) FindByShareID(_ context.Context, shareID string) (*domain.Recibo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numero, ok := s.shares[shareID]
	if !ok {
		return nil, nil
	}
	rec, ok := s.recibos[numero]
	if !ok {
		return nil, nil
	}
	copia := *rec
	return &copia, nil
}

// Upsert inserts or updates a receipt keyed by its number. Like the
// Postgres store, the share identifier and creation time of an existing
// record are preserved.
func (s *MemoryStore) Upsert(_ context.Context, rec *domain.Recibo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copia := *rec
	if existente, ok := s.recibos[rec.Numero]; ok {
		copia.ShareID = existente.ShareID
		copia.CreatedAt = existente.CreatedAt
	}
	s.recibos[copia.Numero] = &copia
	s.shares[copia.ShareID] = copia.Numero
	return nil
}

// Tamper overwrites a stored receipt without recomputing anything. Test
// hook to simulate out-of-band modification of the store.
func (s *MemoryStore) Tamper(numero string, mutate func(*domain.Recibo)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.recibos[numero]; ok {
		mutate(rec)
	}
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
