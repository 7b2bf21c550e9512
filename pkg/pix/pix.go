// Package pix builds static "copia e cola" PIX payloads following the
// EMV QRCPS-MPM tag-length-value layout published by the Banco Central.
package pix

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// gui is the merchant account information domain for PIX (field 26-00).
	gui = "br.gov.bcb.pix"

	// DefaultMerchantName is used when no merchant name is supplied.
	DefaultMerchantName = "RECEBEDOR"

	// DefaultMerchantCity is used when no merchant city is supplied.
	DefaultMerchantCity = "BRASIL"

	// DefaultTxID is used when no transaction id is supplied.
	DefaultTxID = "SGCI"
)

// nonAlphanumericSpaceRegex matches everything except letters, digits and spaces
var nonAlphanumericSpaceRegex = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// nonAlphanumericRegex matches everything except letters and digits
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)

// keyStripper removes whitespace, dots and hyphens from a PIX key
var keyStripper = strings.NewReplacer(" ", "", "\t", "", ".", "", "-", "")

var accentRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// emvField encodes a single tag-length-value field: two-digit id,
// two-digit length, raw value.
func emvField(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// stripAccents removes diacritical marks ("São Paulo" -> "Sao Paulo")
func stripAccents(s string) string {
	out, _, err := transform.String(accentRemover, s)
	if err != nil {
		return s
	}
	return out
}

// normalize strips accents and non-alphanumeric characters (spaces kept
// when keepSpaces), upper-cases and truncates to max characters.
func normalize(s string, max int, keepSpaces bool) string {
	s = stripAccents(s)
	if keepSpaces {
		s = nonAlphanumericSpaceRegex.ReplaceAllString(s, "")
	} else {
		s = nonAlphanumericRegex.ReplaceAllString(s, "")
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// SanitizeKey strips whitespace, dots and hyphens from a PIX key, so that
// formatted CPF/CNPJ/phone keys ("111.444.777-35") encode canonically.
func SanitizeKey(key string) string {
	return keyStripper.Replace(strings.TrimSpace(key))
}

// BuildPayload assembles the static PIX payload for the given key and
// amount. An amount of zero produces an open-value code (the payer types
// the amount). The returned string ends with the 4-hex-digit CRC16 of
// everything before it.
func BuildPayload(key string, amount float64, merchantName, merchantCity, txID string) string {
	name := normalize(merchantName, 25, true)
	if name == "" {
		name = DefaultMerchantName
	}
	city := normalize(merchantCity, 15, true)
	if city == "" {
		city = DefaultMerchantCity
	}
	tx := normalize(txID, 25, false)
	if tx == "" {
		tx = DefaultTxID
	}

	merchantAccount := emvField("00", gui) + emvField("01", SanitizeKey(key))
	additionalData := emvField("05", tx)

	var b strings.Builder
	b.WriteString(emvField("00", "01")) // payload format indicator
	if amount > 0 {
		b.WriteString(emvField("01", "12")) // point of initiation: static, one use per amount
	} else {
		b.WriteString(emvField("01", "11"))
	}
	b.WriteString(emvField("26", merchantAccount))
	b.WriteString(emvField("52", "0000")) // merchant category code
	b.WriteString(emvField("53", "986"))  // ISO 4217 numeric for BRL
	if amount > 0 {
		b.WriteString(emvField("54", fmt.Sprintf("%.2f", amount)))
	}
	b.WriteString(emvField("58", "BR"))
	b.WriteString(emvField("59", name))
	b.WriteString(emvField("60", city))
	b.WriteString(emvField("62", additionalData))

	// checksum field id + length placeholder, included in the CRC input
	b.WriteString("6304")

	payload := b.String()
	return payload + CRC16(payload)
}

// CRC16 computes the CRC-16/CCITT-FALSE checksum of s and formats it as
// four upper-case hex digits. This is the exact variant the PIX standard
// requires: initial value 0xFFFF, polynomial 0x1021, no final XOR, no
// reflection.
func CRC16(s string) string {
	crc := 0xFFFF
	for _, r := range s {
		crc ^= int(r) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
			crc &= 0xFFFF
		}
	}
	return fmt.Sprintf("%04X", crc)
}
