package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duarteurbanismo/sgci-recibos/internal/domain"
	"github.com/duarteurbanismo/sgci-recibos/internal/repository"
	"github.com/duarteurbanismo/sgci-recibos/internal/service"
)

const testAPIKey = "chave-de-teste"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := repository.NewMemoryStore()
	hashService := service.NewHashService("segredo-de-teste")
	reciboService := service.NewReciboService(store, hashService, service.ReciboOptions{
		Origin: "https://recibos.duarteurbanismo.com.br",
		Emitente: domain.Emitente{
			Nome: "Duarte Urbanismo Ltda",
			CNPJ: "11.222.333/0001-81",
		},
		ChavePix:  "11144477735",
		CidadePix: "Palhoça",
	})

	srv := httptest.NewServer(NewRouter(reciboService, nil, testAPIKey))
	t.Cleanup(srv.Close)
	return srv
}

func reciboBody() []byte {
	body, _ := json.Marshal(domain.ReciboRequest{
		Numero:           "REC-0001",
		Valor:            500.00,
		PagadorNome:      "João da Silva",
		PagadorDocumento: "111.444.777-35",
		Descricao:        "Parcela 12/48 do contrato LT-023",
		DataPagamento:    "2026-08-31",
		FormaPagamento:   "PIX",
	})
	return body
}

func doJSON(t *testing.T, method, url string, body []byte, apiKey string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestIssuanceRequiresAPIKey(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/recibos", reciboBody(), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/recibos", reciboBody(), "chave-errada")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIssueVerifyShareFlow(t *testing.T) {
	srv := newTestServer(t)

	// compute-only issuance
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/recibos", reciboBody(), testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var emitido domain.EmitirResponse
	decode(t, resp, &emitido)
	assert.Regexp(t, "^[0-9a-f]{64}$", emitido.Hash)
	assert.NotEmpty(t, emitido.QRPayload.PixPayload)

	// not persisted yet
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/recibos/REC-0001", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// persist
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/recibos", reciboBody(), testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var salvo domain.SalvarResponse
	decode(t, resp, &salvo)
	require.NotEmpty(t, salvo.ShareID)

	// verify by number, with the hash the issuer was given
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/recibos/REC-0001?hash="+emitido.Hash, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verificado domain.VerifyResponse
	decode(t, resp, &verificado)
	assert.True(t, verificado.Valid)
	assert.True(t, verificado.HashMatches)
	require.NotNil(t, verificado.ProvidedHashMatches)
	assert.True(t, *verificado.ProvidedHashMatches)
	require.NotNil(t, verificado.Recibo)
	assert.Equal(t, emitido.Hash, verificado.Recibo.Hash)

	// retrieve by share id: hash absent from the body, present in qrPayload
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/recibos/share/"+salvo.ShareID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var compartilhado domain.ShareResponse
	decode(t, resp, &compartilhado)
	assert.Empty(t, compartilhado.Recibo.Hash)
	assert.Equal(t, emitido.Hash, compartilhado.QRPayload.Hash)
}

func TestValidationErrorListsFields(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(domain.ReciboRequest{Valor: -1})
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/recibos", body, testAPIKey)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody struct {
		Error  string `json:"error"`
		Campos []struct {
			Campo    string `json:"campo"`
			Mensagem string `json:"mensagem"`
		} `json:"campos"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION_ERROR", errBody.Error)
	assert.NotEmpty(t, errBody.Campos)
}

func TestVerifyUnknownReceipt(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/recibos/REC-9999", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errBody map[string]interface{}
	decode(t, resp, &errBody)
	assert.Equal(t, "NOT_FOUND", errBody["error"])
	assert.NotContains(t, errBody, "recibo")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
