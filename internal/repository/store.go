package repository

import (
	"context"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

// ReciboStore persists receipt records. Lookups return (nil, nil) when no
// record exists; Upsert must be atomic per receipt number.
type ReciboStore interface {
	FindByNumero(ctx context.Context, numero string) (*domain.Recibo, error)
	FindByShareID(ctx context.Context, shareID string) (*domain.Recibo, error)
	Upsert(ctx context.Context, recibo *domain.Recibo) error
	Close() error
}
