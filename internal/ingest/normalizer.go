package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader converte um cabeçalho de planilha para a chave canônica:
// minúsculas, acentos removidos, espaços internos viram underscore.
// A transformação é idempotente.
func NormalizeHeader(header string) string {
	header = strings.TrimSpace(strings.ToLower(header))
	if folded, _, err := transform.String(accentStripper, header); err == nil {
		header = folded
	}
	header = strings.Join(strings.Fields(header), " ")
	return strings.ReplaceAll(header, " ", "_")
}

// Sentinelas de "sem dado" vindas das planilhas legadas (pandas exporta NaN/NaT
// como texto em alguns arquivos).
var absentSentinels = map[string]struct{}{
	"":     {},
	"-":    {},
	"nan":  {},
	"nat":  {},
	"none": {},
	"null": {},
}

// IsAbsent informa se a célula representa ausência de dado.
func IsAbsent(cell string) bool {
	_, absent := absentSentinels[strings.ToLower(strings.TrimSpace(cell))]
	return absent
}

// TextOrNil devolve o texto da célula ou nil quando ausente.
func TextOrNil(cell string) *string {
	if IsAbsent(cell) {
		return nil
	}
	trimmed := strings.TrimSpace(cell)
	return &trimmed
}

// Text devolve o texto da célula, vazio quando ausente.
func Text(cell string) string {
	if IsAbsent(cell) {
		return ""
	}
	return strings.TrimSpace(cell)
}
