package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CoerceDate converte uma célula heterogênea (texto dd/mm/aaaa, data já
// formatada pela planilha ou número serial do Excel) para uma data canônica.
// Qualquer entrada não interpretável vira nil: um dado legado malformado não
// pode derrubar o lote inteiro.
func CoerceDate(cell string) *time.Time {
	if IsAbsent(cell) {
		return nil
	}
	cell = strings.TrimSpace(cell)

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cell); err == nil {
			return dateOnly(parsed)
		}
	}

	// Células de data não formatadas chegam como número serial do Excel.
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil && plausibleDate(parsed) {
			return dateOnly(parsed)
		}
	}

	return nil
}

func dateOnly(t time.Time) *time.Time {
	y, m, d := t.Date()
	truncated := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &truncated
}

func plausibleDate(t time.Time) bool {
	return t.Year() >= 1950 && t.Year() <= 2200
}
