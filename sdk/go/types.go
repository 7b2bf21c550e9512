package recibos

import "time"

// ReciboRequest carries the receipt fields for issuance
type ReciboRequest struct {
	Numero           string  `json:"numero,omitempty"`
	Valor            float64 `json:"valor"`
	PagadorNome      string  `json:"pagadorNome"`
	PagadorDocumento string  `json:"pagadorDocumento"`
	Descricao        string  `json:"descricao"`
	DataPagamento    string  `json:"dataPagamento"`
	FormaPagamento   string  `json:"formaPagamento"`
	ChavePix         string  `json:"chavePix,omitempty"`
}

// QRPayload is the verification/payment payload embedded in the QR code
type QRPayload struct {
	Numero     string  `json:"numero"`
	Valor      float64 `json:"valor"`
	Data       string  `json:"data"`
	Emitente   string  `json:"emitente"`
	Hash       string  `json:"hash"`
	VerifyURL  string  `json:"verifyUrl"`
	ShareURL   string  `json:"shareUrl,omitempty"`
	PixKey     string  `json:"pixKey,omitempty"`
	PixPayload string  `json:"pixPayload,omitempty"`
}

// Recibo is a receipt as returned by the API
type Recibo struct {
	Numero           string    `json:"numero"`
	Valor            float64   `json:"valor"`
	ValorExtenso     string    `json:"valorExtenso"`
	PagadorNome      string    `json:"pagadorNome"`
	PagadorDocumento string    `json:"pagadorDocumento"`
	Descricao        string    `json:"descricao"`
	DataPagamento    string    `json:"dataPagamento"`
	FormaPagamento   string    `json:"formaPagamento"`
	EmitenteNome     string    `json:"emitenteNome"`
	EmitenteCNPJ     string    `json:"emitenteCnpj"`
	EmitenteEndereco string    `json:"emitenteEndereco"`
	EmitenteTelefone string    `json:"emitenteTelefone"`
	EmitenteEmail    string    `json:"emitenteEmail"`
	ChavePix         string    `json:"chavePix,omitempty"`
	PixPayload       string    `json:"pixPayload,omitempty"`
	ShareID          string    `json:"shareId"`
	ShareURL         string    `json:"shareUrl"`
	Hash             string    `json:"hash,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// EmitirResponse is returned by the compute-only issuance endpoint
type EmitirResponse struct {
	Hash      string    `json:"hash"`
	QRPayload QRPayload `json:"qrPayload"`
}

// SalvarResponse is returned after a receipt has been persisted
type SalvarResponse struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

// VerifyResponse answers whether a stored receipt is authentic
type VerifyResponse struct {
	Valid               bool    `json:"valid"`
	HashMatches         bool    `json:"hashMatches"`
	ProvidedHashMatches *bool   `json:"providedHashMatches,omitempty"`
	Recibo              *Recibo `json:"recibo,omitempty"`
}

// ShareResponse is returned by the by-share retrieval endpoint
type ShareResponse struct {
	Recibo    Recibo    `json:"recibo"`
	QRPayload QRPayload `json:"qrPayload"`
}

// APIError is a non-2xx response from the service
type APIError struct {
	StatusCode int
	Code       string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Code
}
