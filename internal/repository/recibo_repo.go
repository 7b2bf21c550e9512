package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

// ReciboRepository persists receipts in Postgres
type ReciboRepository struct {
	db *sql.DB
}

// NewReciboRepository creates a new receipt repository
func NewReciboRepository(databaseURL string) (*ReciboRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &ReciboRepository{db: db}, nil
}

// Close closes the database connection
func (r *ReciboRepository) Close() error {
	return r.db.Close()
}

const reciboColumns = `
	numero, valor, valor_extenso, pagador_nome, pagador_documento,
	descricao, data_pagamento, forma_pagamento,
	emitente_nome, emitente_cnpj, emitente_endereco, emitente_telefone, emitente_email,
	chave_pix, pix_payload, hash, share_id, created_at, updated_at
`

func scanRecibo(row *sql.Row) (*domain.Recibo, error) {
	var rec domain.Recibo
	err := row.Scan(
		&rec.Numero,
		&rec.Valor,
		&rec.ValorExtenso,
		&rec.PagadorNome,
		&rec.PagadorDocumento,
		&rec.Descricao,
		&rec.DataPagamento,
		&rec.FormaPagamento,
		&rec.EmitenteNome,
		&rec.EmitenteCNPJ,
		&rec.EmitenteEndereco,
		&rec.EmitenteTelefone,
		&rec.EmitenteEmail,
		&rec.ChavePix,
		&rec.PixPayload,
		&rec.Hash,
		&rec.ShareID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recibo: %w", err)
	}
	return &rec, nil
}

// FindByNumero finds a receipt by its number
func (r *ReciboRepository) FindByNumero(ctx context.Context, numero string) (*domain.Recibo, error) {
	query := `SELECT ` + reciboColumns + ` FROM recibos WHERE numero = $1`
	return scanRecibo(r.db.QueryRowContext(ctx, query, numero))
}

// FindByShareID finds a receipt by its public share identifier
func (r *ReciboRepository) FindByShareID(ctx context.Context, shareID string) (*domain.Recibo, error) {
	query := `SELECT ` + reciboColumns + ` FROM recibos WHERE share_id = $1`
	return scanRecibo(r.db.QueryRowContext(ctx, query, shareID))
}

// Upsert inserts or updates a receipt keyed by its number in a single
// atomic statement. On update the original share_id and created_at are
// preserved: share links already distributed keep working, and only the
// first insert's share identifier ever wins.
func (r *ReciboRepository) Upsert(ctx context.Context, rec *domain.Recibo) error {
	query := `
		INSERT INTO recibos (` + reciboColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (numero) DO UPDATE SET
			valor = EXCLUDED.valor,
			valor_extenso = EXCLUDED.valor_extenso,
			pagador_nome = EXCLUDED.pagador_nome,
			pagador_documento = EXCLUDED.pagador_documento,
			descricao = EXCLUDED.descricao,
			data_pagamento = EXCLUDED.data_pagamento,
			forma_pagamento = EXCLUDED.forma_pagamento,
			emitente_nome = EXCLUDED.emitente_nome,
			emitente_cnpj = EXCLUDED.emitente_cnpj,
			emitente_endereco = EXCLUDED.emitente_endereco,
			emitente_telefone = EXCLUDED.emitente_telefone,
			emitente_email = EXCLUDED.emitente_email,
			chave_pix = EXCLUDED.chave_pix,
			pix_payload = EXCLUDED.pix_payload,
			hash = EXCLUDED.hash,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.Numero,
		rec.Valor,
		rec.ValorExtenso,
		rec.PagadorNome,
		rec.PagadorDocumento,
		rec.Descricao,
		rec.DataPagamento,
		rec.FormaPagamento,
		rec.EmitenteNome,
		rec.EmitenteCNPJ,
		rec.EmitenteEndereco,
		rec.EmitenteTelefone,
		rec.EmitenteEmail,
		rec.ChavePix,
		rec.PixPayload,
		rec.Hash,
		rec.ShareID,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recibo: %w", err)
	}

	return nil
}
