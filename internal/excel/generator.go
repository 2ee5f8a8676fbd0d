package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/caioln/sfa-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ValueComparisonWorkbook monta uma pasta com a tabela de totais por ano de
// assinatura e um gráfico de colunas comparando valor original e atualizado.
func (g *Generator) ValueComparisonWorkbook(rows []model.YearValueComparison) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Comparativo"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Ano")
	set("B1", "Valor original")
	set("C1", "Valor atualizado")
	for i, row := range rows {
		line := i + 2
		set(fmt.Sprintf("A%d", line), row.Ano)
		set(fmt.Sprintf("B%d", line), row.ValorOriginal)
		set(fmt.Sprintf("C%d", line), row.ValorAtualizado)
	}
	_ = file.SetColWidth(sheet, "A", "A", 10)
	_ = file.SetColWidth(sheet, "B", "C", 20)

	if len(rows) > 0 {
		lastRow := len(rows) + 1
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$B$1", sheet),
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastRow),
					Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, lastRow),
				},
				{
					Name:       fmt.Sprintf("%s!$C$1", sheet),
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastRow),
					Values:     fmt.Sprintf("%s!$C$2:$C$%d", sheet, lastRow),
				},
			},
			Title: []excelize.RichTextRun{
				{Text: "Valores originais e atualizados por ano de assinatura"},
			},
		}
		if err := file.AddChart(sheet, "E2", chart); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PaidEvolutionWorkbook monta uma pasta com a evolução anual dos valores
// pagos e um gráfico de linha.
func (g *Generator) PaidEvolutionWorkbook(rows []model.YearPaid) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Pagamentos"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Ano")
	set("B1", "Valor pago")
	for i, row := range rows {
		line := i + 2
		set(fmt.Sprintf("A%d", line), row.Ano)
		set(fmt.Sprintf("B%d", line), row.ValorPago)
	}
	_ = file.SetColWidth(sheet, "A", "A", 10)
	_ = file.SetColWidth(sheet, "B", "B", 20)

	if len(rows) > 0 {
		lastRow := len(rows) + 1
		chart := &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{
				{
					Name:       fmt.Sprintf("%s!$B$1", sheet),
					Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, lastRow),
					Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheet, lastRow),
				},
			},
			Title: []excelize.RichTextRun{
				{Text: "Evolução dos valores pagos por ano de assinatura"},
			},
		}
		if err := file.AddChart(sheet, "D2", chart); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
