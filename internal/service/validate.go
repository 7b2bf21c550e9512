package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/paemuri/brdoc"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

// numeroRegex matches a normalized receipt number: uppercase alphanumeric
// with hyphens, at most 32 characters
var numeroRegex = regexp.MustCompile(`^[A-Z0-9-]{1,32}$`)

// ValidateRequest checks the caller-supplied receipt fields and returns a
// *ValidationError listing every invalid field. Validation runs before any
// persistence attempt.
func ValidateRequest(req *domain.ReciboRequest) error {
	verr := &ValidationError{}

	if numero := strings.ToUpper(strings.TrimSpace(req.Numero)); numero != "" && !numeroRegex.MatchString(numero) {
		verr.add("numero", "deve conter apenas letras, números e hífens (máximo 32 caracteres)")
	}

	if req.Valor < 0 {
		verr.add("valor", "deve ser maior ou igual a zero")
	}

	if strings.TrimSpace(req.PagadorNome) == "" {
		verr.add("pagadorNome", "é obrigatório")
	}

	documento := strings.TrimSpace(req.PagadorDocumento)
	if documento == "" {
		verr.add("pagadorDocumento", "é obrigatório")
	} else if !brdoc.IsCPF(documento) && !brdoc.IsCNPJ(documento) {
		verr.add("pagadorDocumento", "CPF ou CNPJ inválido")
	}

	if strings.TrimSpace(req.Descricao) == "" {
		verr.add("descricao", "é obrigatória")
	}

	data := strings.TrimSpace(req.DataPagamento)
	if data == "" {
		verr.add("dataPagamento", "é obrigatória")
	} else if _, err := time.Parse("2006-01-02", data); err != nil {
		verr.add("dataPagamento", "deve estar no formato AAAA-MM-DD")
	}

	if strings.TrimSpace(req.FormaPagamento) == "" {
		verr.add("formaPagamento", "é obrigatória")
	}

	if len(verr.Campos) > 0 {
		return verr
	}
	return nil
}
