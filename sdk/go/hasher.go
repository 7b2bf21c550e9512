package recibos

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// nonDigitRegex matches everything except ASCII digits
var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizeTexto normalizes a free-text field: trim whitespace, uppercase
func NormalizeTexto(texto string) string {
	return strings.ToUpper(strings.TrimSpace(texto))
}

// NormalizeDocumento normalizes a CPF/CNPJ or phone number: digits only
func NormalizeDocumento(documento string) string {
	return nonDigitRegex.ReplaceAllString(documento, "")
}

// Canonical reproduces the server's canonical string for a receipt, so a
// holder can recompute the fingerprint from the visible fields
func Canonical(r *Recibo) string {
	campos := []string{
		NormalizeTexto(r.Numero),
		fmt.Sprintf("%.2f", r.Valor),
		strings.TrimSpace(r.DataPagamento),
		NormalizeTexto(r.PagadorNome),
		NormalizeDocumento(r.PagadorDocumento),
		NormalizeTexto(r.Descricao),
		NormalizeTexto(r.FormaPagamento),
		NormalizeTexto(r.EmitenteNome),
		NormalizeDocumento(r.EmitenteCNPJ),
		NormalizeTexto(r.EmitenteEndereco),
		NormalizeDocumento(r.EmitenteTelefone),
		strings.ToLower(strings.TrimSpace(r.EmitenteEmail)),
	}
	return strings.Join(campos, "|")
}

// Fingerprint computes the SHA-256 fingerprint of a receipt. The secret
// must match the server's HASH_SECRET; deployments without one pass "".
// Fingerprints computed here equal the server's for untampered receipts.
func Fingerprint(r *Recibo, secret string) string {
	data := Canonical(r)
	if secret != "" {
		data = data + "|" + secret
	}
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
