package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

// HashService canonicalizes receipt fields and computes the authenticity
// fingerprint. The optional secret keeps the fingerprint unreproducible
// by parties that know the algorithm and the visible fields.
type HashService struct {
	secret string
}

// NewHashService creates a new hash service. An empty secret is allowed:
// the fingerprint then covers the canonical string alone.
func NewHashService(secret string) *HashService {
	return &HashService{secret: secret}
}

// nonDigitRegex matches everything except ASCII digits
var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizeTexto normalizes a free-text field: trim whitespace, uppercase
func (s *HashService) NormalizeTexto(texto string) string {
	return strings.ToUpper(strings.TrimSpace(texto))
}

// NormalizeDocumento normalizes a CPF/CNPJ or phone number: digits only
func (s *HashService) NormalizeDocumento(documento string) string {
	return nonDigitRegex.ReplaceAllString(documento, "")
}

// NormalizeEmail normalizes an e-mail address: trim whitespace, lowercase
func (s *HashService) NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeValor normalizes an amount: 2 decimal places, no thousands separator
func (s *HashService) NormalizeValor(valor float64) string {
	return fmt.Sprintf("%.2f", valor)
}

// Canonical produces the deterministic string representation of a receipt.
// Field order is fixed; two receipts differing only by casing, surrounding
// whitespace or punctuation in documents/phones canonicalize identically.
func (s *HashService) Canonical(d *domain.ReciboData) string {
	campos := []string{
		s.NormalizeTexto(d.Numero),
		s.NormalizeValor(d.Valor),
		strings.TrimSpace(d.DataPagamento),
		s.NormalizeTexto(d.PagadorNome),
		s.NormalizeDocumento(d.PagadorDocumento),
		s.NormalizeTexto(d.Descricao),
		s.NormalizeTexto(d.FormaPagamento),
		s.NormalizeTexto(d.EmitenteNome),
		s.NormalizeDocumento(d.EmitenteCNPJ),
		s.NormalizeTexto(d.EmitenteEndereco),
		s.NormalizeDocumento(d.EmitenteTelefone),
		s.NormalizeEmail(d.EmitenteEmail),
	}
	return strings.Join(campos, "|")
}

// Fingerprint computes the SHA-256 fingerprint of a receipt's canonical
// form, salted with the configured secret when one is set. Output is
// lower-case hex.
func (s *HashService) Fingerprint(d *domain.ReciboData) string {
	data := s.Canonical(d)
	if s.secret != "" {
		data = data + "|" + s.secret
	}
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
