package domain

import "time"

// Emitente is the issuer identity, fixed per deployment.
type Emitente struct {
	Nome     string
	CNPJ     string
	Endereco string
	Telefone string
	Email    string
}

// ReciboData is the business content of a receipt. Issuer (emitente)
// fields are fixed per deployment and filled from configuration, never
// taken from the caller.
type ReciboData struct {
	Numero           string  `json:"numero" db:"numero"`
	Valor            float64 `json:"valor" db:"valor"`
	ValorExtenso     string  `json:"valorExtenso" db:"valor_extenso"`
	PagadorNome      string  `json:"pagadorNome" db:"pagador_nome"`
	PagadorDocumento string  `json:"pagadorDocumento" db:"pagador_documento"`
	Descricao        string  `json:"descricao" db:"descricao"`
	DataPagamento    string  `json:"dataPagamento" db:"data_pagamento"` // YYYY-MM-DD
	FormaPagamento   string  `json:"formaPagamento" db:"forma_pagamento"`
	EmitenteNome     string  `json:"emitenteNome" db:"emitente_nome"`
	EmitenteCNPJ     string  `json:"emitenteCnpj" db:"emitente_cnpj"`
	EmitenteEndereco string  `json:"emitenteEndereco" db:"emitente_endereco"`
	EmitenteTelefone string  `json:"emitenteTelefone" db:"emitente_telefone"`
	EmitenteEmail    string  `json:"emitenteEmail" db:"emitente_email"`
	ChavePix         string  `json:"chavePix,omitempty" db:"chave_pix"`
	PixPayload       string  `json:"pixPayload,omitempty" db:"pix_payload"`
}

// Recibo is a persisted receipt record: its data plus the authenticity
// fingerprint, the public share identifier and timestamps.
type Recibo struct {
	ReciboData
	Hash      string    `json:"hash"`
	ShareID   string    `json:"shareId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReciboRequest carries the caller-supplied receipt fields for issuance.
// ValorExtenso is intentionally absent: it is always derived from Valor.
type ReciboRequest struct {
	Numero           string  `json:"numero"`
	Valor            float64 `json:"valor"`
	PagadorNome      string  `json:"pagadorNome"`
	PagadorDocumento string  `json:"pagadorDocumento"`
	Descricao        string  `json:"descricao"`
	DataPagamento    string  `json:"dataPagamento"`
	FormaPagamento   string  `json:"formaPagamento"`
	ChavePix         string  `json:"chavePix,omitempty"`
}

// QRPayload is the verification/payment payload embedded in the receipt's
// QR code. ShareURL is empty until the receipt has been persisted and a
// share identifier assigned.
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

// ReciboView is the representation of a stored receipt returned by the
// API. Hash uses omitempty so the by-share response can leave it out of
// the public body while the verification response includes it.
type ReciboView struct {
	ReciboData
	ShareID   string    `json:"shareId"`
	ShareURL  string    `json:"shareUrl"`
	Hash      string    `json:"hash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmitirResponse is returned by the compute-only issuance endpoint.
type EmitirResponse struct {
	Hash      string    `json:"hash"`
	QRPayload QRPayload `json:"qrPayload"`
}

// SalvarResponse is returned after a receipt has been persisted.
type SalvarResponse struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

// VerifyResponse answers "is this receipt authentic". HashMatches compares
// the recomputed fingerprint against the stored one; ProvidedHashMatches
// is present only when the caller supplied an out-of-band hash.
type VerifyResponse struct {
	Valid               bool        `json:"valid"`
	HashMatches         bool        `json:"hashMatches"`
	ProvidedHashMatches *bool       `json:"providedHashMatches,omitempty"`
	Recibo              *ReciboView `json:"recibo,omitempty"`
}

// ShareResponse is returned by the by-share retrieval endpoint. The hash
// is omitted from the public recibo body but carried inside the QR
// payload for verification-link construction.
type ShareResponse struct {
	Recibo    ReciboView `json:"recibo"`
	QRPayload QRPayload  `json:"qrPayload"`
}
