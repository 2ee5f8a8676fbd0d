package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/caioln/sfa-service/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate monta a ficha resumida de um contrato em uma página A4. As fontes
// núcleo do PDF cobrem os acentos do português via cp1252.
func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Ficha do Contrato"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contrato nº %s", doc.Contract.NumeroContrato)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Identificação"), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("CPF/CNPJ: %s", safeValue(doc.Contract.CpfCnpj)),
		fmt.Sprintf("Contratante: %s", safeValue(doc.Contract.Contratante)),
		fmt.Sprintf("Contratado: %s", safeValue(doc.Contract.Contratado)),
		fmt.Sprintf("Tipo de objeto: %s", safeText(doc.Contract.TipoObjeto)),
		fmt.Sprintf("Objeto: %s", safeValue(doc.Contract.Objeto)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Valores"), "", 1, "L", false, 0, "")
	headers := []string{"Original", "Aditivo", "Atualizado", "Empenhado", "Pago"}
	widths := []float64{36, 36, 36, 36, 36}
	drawTableRow(pdf, tr, headers, widths, true)
	if doc.Values != nil {
		row := []string{
			formatMoney(doc.Values.ValorOriginal),
			formatMoney(doc.Values.ValorAditivo),
			formatMoney(doc.Values.ValorAtualizado),
			formatMoney(doc.Values.ValorEmpenhado),
			formatMoney(doc.Values.ValorPago),
		}
		drawTableRow(pdf, tr, row, widths, false)
	} else {
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(0, 6, tr("Sem detalhamento financeiro na fonte."), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Datas"), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	if doc.Dates != nil {
		dates := []string{
			fmt.Sprintf("Assinatura: %s", formatDate(doc.Dates.DataAssinatura)),
			fmt.Sprintf("Término original: %s", formatDate(doc.Dates.DataTerminoOriginal)),
			fmt.Sprintf("Término após aditivo: %s", formatDate(doc.Dates.DataTerminoAposAditivo)),
			fmt.Sprintf("Rescisão: %s", formatDate(doc.Dates.DataRescisao)),
			fmt.Sprintf("Publicação no DOE: %s", formatDate(doc.Dates.DataPublicacaoDOE)),
		}
		for _, line := range dates {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	} else {
		pdf.CellFormat(0, 6, tr("Sem datas registradas na fonte."), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "R"
		if header {
			align = "C"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func safeText(value *string) string {
	if value == nil {
		return "—"
	}
	return safeValue(*value)
}

// formatMoney escreve o valor no formato brasileiro, ex.: R$ 1.234.567,89.
func formatMoney(value *float64) string {
	if value == nil {
		return "—"
	}
	plain := fmt.Sprintf("%.2f", *value)
	parts := strings.SplitN(plain, ".", 2)
	intPart, decPart := parts[0], parts[1]

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}
	var grouped []string
	for len(intPart) > 3 {
		grouped = append([]string{intPart[len(intPart)-3:]}, grouped...)
		intPart = intPart[:len(intPart)-3]
	}
	grouped = append([]string{intPart}, grouped...)
	return fmt.Sprintf("R$ %s%s,%s", sign, strings.Join(grouped, "."), decPart)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}
