package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
	"github.com/duarteurbanismo/sgci-recibos/internal/repository"
	"github.com/duarteurbanismo/sgci-recibos/pkg/pix"
)

// ReciboOptions carries the deployment-fixed settings of the receipt
// service: public origin for links, issuer identity and PIX defaults.
type ReciboOptions struct {
	Origin    string
	Emitente  domain.Emitente
	ChavePix  string
	CidadePix string
}

// ReciboService issues, persists and verifies receipts
type ReciboService struct {
	store       repository.ReciboStore
	hashService *HashService
	opts        ReciboOptions
}

// NewReciboService creates a new receipt service
func NewReciboService(store repository.ReciboStore, hashService *HashService, opts ReciboOptions) *ReciboService {
	return &ReciboService{
		store:       store,
		hashService: hashService,
		opts:        opts,
	}
}

// Preparar validates a request and assembles the full receipt content:
// normalized number (generated from the issue time when blank), derived
// amount in words, issuer identity from configuration and the static PIX
// payload when a key is available.
func (s *ReciboService) Preparar(req *domain.ReciboRequest) (*domain.ReciboData, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	numero := strings.ToUpper(strings.TrimSpace(req.Numero))
	if numero == "" {
		numero = "REC-" + time.Now().UTC().Format("20060102-150405")
	}

	chave := strings.TrimSpace(req.ChavePix)
	if chave == "" {
		chave = s.opts.ChavePix
	}

	data := &domain.ReciboData{
		Numero:           numero,
		Valor:            req.Valor,
		ValorExtenso:     ValorPorExtenso(req.Valor),
		PagadorNome:      strings.TrimSpace(req.PagadorNome),
		PagadorDocumento: strings.TrimSpace(req.PagadorDocumento),
		Descricao:        strings.TrimSpace(req.Descricao),
		DataPagamento:    strings.TrimSpace(req.DataPagamento),
		FormaPagamento:   strings.TrimSpace(req.FormaPagamento),
		EmitenteNome:     s.opts.Emitente.Nome,
		EmitenteCNPJ:     s.opts.Emitente.CNPJ,
		EmitenteEndereco: s.opts.Emitente.Endereco,
		EmitenteTelefone: s.opts.Emitente.Telefone,
		EmitenteEmail:    s.opts.Emitente.Email,
		ChavePix:         chave,
	}

	if chave != "" {
		data.PixPayload = pix.BuildPayload(chave, data.Valor, data.EmitenteNome, s.opts.CidadePix, data.Numero)
	}

	return data, nil
}

// Emitir computes the fingerprint and QR payload for a receipt without
// persisting anything. Persistence is a separate step (Salvar) invoked by
// the caller's workflow.
func (s *ReciboService) Emitir(req *domain.ReciboRequest) (*domain.EmitirResponse, error) {
	data, err := s.Preparar(req)
	if err != nil {
		return nil, err
	}

	hash := s.hashService.Fingerprint(data)
	return &domain.EmitirResponse{
		Hash:      hash,
		QRPayload: s.qrPayload(data, hash, ""),
	}, nil
}

// Salvar persists a receipt. The receipt number is the natural key: a
// first issuance mints a fresh share identifier, a re-issuance of the same
// number carries the existing one forward and refreshes content and hash.
//
// Two concurrent first issuances of the same number can each mint a share
// id before either upsert commits; the store's atomic upsert keeps the
// record consistent but only one of the minted ids ends up persisted.
// Receipt numbers are assigned by a single issuing workflow, so the race
// is accepted rather than locked around.
func (s *ReciboService) Salvar(ctx context.Context, req *domain.ReciboRequest) (*domain.SalvarResponse, error) {
	data, err := s.Preparar(req)
	if err != nil {
		return nil, err
	}

	existente, err := s.store.FindByNumero(ctx, data.Numero)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recibo %s: %w", data.Numero, err)
	}

	now := time.Now().UTC()
	rec := &domain.Recibo{
		ReciboData: *data,
		Hash:       s.hashService.Fingerprint(data),
		ShareID:    uuid.New().String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existente != nil {
		rec.ShareID = existente.ShareID
		rec.CreatedAt = existente.CreatedAt
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist recibo %s: %w", data.Numero, err)
	}

	return &domain.SalvarResponse{
		ShareID:  rec.ShareID,
		ShareURL: s.shareURL(rec.ShareID),
	}, nil
}

// Verificar recomputes the fingerprint of a stored receipt and compares it
// to the stored hash, and optionally to a hash the caller was given out of
// band. A mismatch is a normal {valid:false} result, not an error.
func (s *ReciboService) Verificar(ctx context.Context, numero, providedHash string) (*domain.VerifyResponse, error) {
	numero = strings.ToUpper(strings.TrimSpace(numero))

	rec, err := s.store.FindByNumero(ctx, numero)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recibo %s: %w", numero, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.Hash == "" {
		return nil, ErrHashMissing
	}

	recomputed := s.hashService.Fingerprint(&rec.ReciboData)
	hashMatches := recomputed == rec.Hash

	resp := &domain.VerifyResponse{
		HashMatches: hashMatches,
		Valid:       hashMatches,
	}

	if provided := strings.ToLower(strings.TrimSpace(providedHash)); provided != "" {
		matches := provided == rec.Hash
		resp.ProvidedHashMatches = &matches
		resp.Valid = hashMatches && matches
	}

	view := s.view(rec)
	view.Hash = rec.Hash
	resp.Recibo = &view

	return resp, nil
}

// Compartilhado resolves a receipt by its public share identifier. The
// hash is left out of the receipt body and carried only inside the QR
// payload, where it feeds the verification link.
func (s *ReciboService) Compartilhado(ctx context.Context, shareID string) (*domain.ShareResponse, error) {
	rec, err := s.store.FindByShareID(ctx, strings.TrimSpace(shareID))
	if err != nil {
		return nil, fmt.Errorf("failed to look up share %s: %w", shareID, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	return &domain.ShareResponse{
		Recibo:    s.view(rec),
		QRPayload: s.qrPayload(&rec.ReciboData, rec.Hash, rec.ShareID),
	}, nil
}

func (s *ReciboService) view(rec *domain.Recibo) domain.ReciboView {
	return domain.ReciboView{
		ReciboData: rec.ReciboData,
		ShareID:    rec.ShareID,
		ShareURL:   s.shareURL(rec.ShareID),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func (s *ReciboService) qrPayload(data *domain.ReciboData, hash, shareID string) domain.QRPayload {
	payload := domain.QRPayload{
		Numero:     data.Numero,
		Valor:      data.Valor,
		Data:       data.DataPagamento,
		Emitente:   data.EmitenteNome,
		Hash:       hash,
		VerifyURL:  s.verifyURL(data.Numero, hash),
		PixKey:     data.ChavePix,
		PixPayload: data.PixPayload,
	}
	if shareID != "" {
		payload.ShareURL = s.shareURL(shareID)
	}
	return payload
}

func (s *ReciboService) verifyURL(numero, hash string) string {
	return fmt.Sprintf("%s/api/recibos/%s?hash=%s", s.opts.Origin, url.PathEscape(numero), url.QueryEscape(hash))
}

func (s *ReciboService) shareURL(shareID string) string {
	return fmt.Sprintf("%s/recibos/share/%s", s.opts.Origin, url.PathEscape(shareID))
}
