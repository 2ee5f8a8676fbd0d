package ingest

import (
	"strconv"
	"strings"
)

// CoerceMoney converte uma célula monetária para float64, aceitando o formato
// da planilha ("1234.56") e o formato brasileiro ("1.234,56", com ou sem
// prefixo R$). Ausente ou não interpretável vira nil.
func CoerceMoney(cell string) *float64 {
	if IsAbsent(cell) {
		return nil
	}

	cleaned := strings.TrimSpace(cell)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.TrimSpace(cleaned)

	// "10.000" sem centavos é milhar brasileiro, não decimal.
	if groupedThousands(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	if value, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return &value
	}

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		if value, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return &value
		}
	}

	return nil
}

// groupedThousands reconhece inteiros com separador de milhar no formato
// brasileiro ("10.000", "1.234.567"): grupos de três dígitos após o primeiro
// e nenhuma vírgula decimal.
func groupedThousands(s string) bool {
	if strings.Contains(s, ",") || !strings.Contains(s, ".") {
		return false
	}
	s = strings.TrimPrefix(s, "-")
	groups := strings.Split(s, ".")
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 || groups[0] == "0" {
		return false
	}
	for _, g := range groups {
		if !digitsOnly(g) {
			return false
		}
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
