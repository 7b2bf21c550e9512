package pix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC16_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string keeps initial register", "", "FFFF"},
		{"standard check value", "123456789", "29B1"},
		{"single byte", "A", "B915"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CRC16(tt.input))
		})
	}
}

func TestBuildPayload_ChecksumRoundTrip(t *testing.T) {
	payload := BuildPayload("11144477735", 100.50, "DUARTE URBANISMO", "Florianopolis", "TEST123")

	require.Greater(t, len(payload), 4)
	body := payload[:len(payload)-4]
	checksum := payload[len(payload)-4:]

	assert.True(t, strings.HasSuffix(body, "6304"))
	assert.Equal(t, checksum, CRC16(body))
}

func TestBuildPayload_FieldOrder(t *testing.T) {
	payload := BuildPayload("11144477735", 100.50, "DUARTE URBANISMO", "Florianopolis", "TEST123")

	assert.True(t, strings.HasPrefix(payload, "000201"), "payload format indicator first")
	assert.Contains(t, payload, "010212", "static code with amount uses initiation method 12")
	assert.Contains(t, payload, "0014br.gov.bcb.pix")
	assert.Contains(t, payload, "52040000")
	assert.Contains(t, payload, "5303986")
	assert.Contains(t, payload, "5406100.50")
	assert.Contains(t, payload, "5802BR")
	assert.Contains(t, payload, "5916DUARTE URBANISMO")
	assert.Contains(t, payload, "6013FLORIANOPOLIS")
	assert.Contains(t, payload, "0507TEST123")
}

func TestBuildPayload_OpenAmount(t *testing.T) {
	payload := BuildPayload("chave@duarte.com.br", 0, "Duarte", "Palhoca", "")

	assert.Contains(t, payload, "010211", "open-value code uses initiation method 11")
	assert.Contains(t, payload, "53039865802BR", "amount field omitted, currency directly followed by country")
	assert.Contains(t, payload, "0504SGCI", "tx id falls back to default")
}

func TestBuildPayload_NormalizesMerchantFields(t *testing.T) {
	payload := BuildPayload("123", 10, "Construções & Terrenos São José Ltda.", "São José", "Parcela nº 12/2026")

	// accent-stripped, punctuation removed, truncated to 25 chars
	assert.Contains(t, payload, "5925CONSTRUCOES  TERRENOS SAO")
	assert.Contains(t, payload, "6008SAO JOSE")
	assert.Contains(t, payload, "0514PARCELAN122026")
}

func TestBuildPayload_DefaultsWhenEmpty(t *testing.T) {
	payload := BuildPayload("123", 0, "", "", "")

	assert.Contains(t, payload, "5909RECEBEDOR")
	assert.Contains(t, payload, "6006BRASIL")
	assert.Contains(t, payload, "0504SGCI")
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "11144477735", SanitizeKey("111.444.777-35"))
	assert.Equal(t, "11987654321", SanitizeKey(" 11 98765-4321 "))
	assert.Equal(t, "chave@duartecombr", SanitizeKey("chave@duarte.com.br"))
}

func TestBuildPayload_StableForIdenticalInputs(t *testing.T) {
	a := BuildPayload("11144477735", 500, "Duarte Urbanismo", "Palhoca", "REC0001")
	b := BuildPayload("11144477735", 500, "Duarte Urbanismo", "Palhoca", "REC0001")
	assert.Equal(t, a, b)
}
