package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
)

func validRequest() domain.ReciboRequest {
	return domain.ReciboRequest{
		Numero:           "REC-0001",
		Valor:            500.00,
		PagadorNome:      "João da Silva",
		PagadorDocumento: "111.444.777-35",
		Descricao:        "Parcela 12/48 do contrato LT-023",
		DataPagamento:    "2026-08-31",
		FormaPagamento:   "PIX",
	}
}

func camposInvalidos(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	campos := make([]string, 0, len(verr.Campos))
	for _, c := range verr.Campos {
		campos = append(campos, c.Campo)
	}
	return campos
}

func TestValidateRequest_Valid(t *testing.T) {
	req := validRequest()
	assert.NoError(t, ValidateRequest(&req))
}

func TestValidateRequest_BlankNumeroAllowed(t *testing.T) {
	req := validRequest()
	req.Numero = ""
	assert.NoError(t, ValidateRequest(&req), "blank number is auto-generated later")
}

func TestValidateRequest_AcceptsCNPJ(t *testing.T) {
	req := validRequest()
	req.PagadorDocumento = "11.222.333/0001-81"
	assert.NoError(t, ValidateRequest(&req))
}

func TestValidateRequest_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ReciboRequest)
		campo  string
	}{
		{"malformed numero", func(r *domain.ReciboRequest) { r.Numero = "REC 0001!" }, "numero"},
		{"numero too long", func(r *domain.ReciboRequest) { r.Numero = "REC-0000000000000000000000000000001" }, "numero"},
		{"negative valor", func(r *domain.ReciboRequest) { r.Valor = -1 }, "valor"},
		{"missing payer name", func(r *domain.ReciboRequest) { r.PagadorNome = "  " }, "pagadorNome"},
		{"cpf fails check digits", func(r *domain.ReciboRequest) { r.PagadorDocumento = "111.444.777-36" }, "pagadorDocumento"},
		{"document wrong length", func(r *domain.ReciboRequest) { r.PagadorDocumento = "12345" }, "pagadorDocumento"},
		{"missing descricao", func(r *domain.ReciboRequest) { r.Descricao = "" }, "descricao"},
		{"unparseable date", func(r *domain.ReciboRequest) { r.DataPagamento = "31/08/2026" }, "dataPagamento"},
		{"missing payment method", func(r *domain.ReciboRequest) { r.FormaPagamento = "" }, "formaPagamento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := ValidateRequest(&req)
			require.Error(t, err)
			assert.Contains(t, camposInvalidos(t, err), tt.campo)
		})
	}
}

func TestValidateRequest_ReportsEveryInvalidField(t *testing.T) {
	req := domain.ReciboRequest{Valor: -10}
	err := ValidateRequest(&req)

	campos := camposInvalidos(t, err)
	assert.ElementsMatch(t, []string{"valor", "pagadorNome", "pagadorDocumento", "descricao", "dataPagamento", "formaPagamento"}, campos)
}
