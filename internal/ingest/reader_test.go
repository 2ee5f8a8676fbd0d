package ingest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	file := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadSourceNormalizesHeadersOnce(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Número do Contrato", "Valor Original", "Data de Assinatura"},
		{"CT-001/2020", "R$ 1.000,00", "15/03/2021"},
	})

	source, err := ReadSource("contratos.xlsx", reader)
	require.NoError(t, err)
	require.Equal(t, []string{"numero_do_contrato", "valor_original", "data_de_assinatura"}, source.Headers)
	require.Len(t, source.Rows, 1)
	require.Equal(t, "CT-001/2020", source.Rows[0].Get("numero_do_contrato"))
}

func TestReadSourceKeysCellsByHeaderNotPosition(t *testing.T) {
	// A segunda linha não traz as células finais; elas devem ler como vazias
	// sem deslocar as colunas restantes.
	reader := buildWorkbook(t, [][]interface{}{
		{"Contratante", "Contratado", "Objeto"},
		{"Estado do Ceará", "Construtora X", "Reforma de escola"},
		{"Estado do Ceará"},
	})

	source, err := ReadSource("contratos.xlsx", reader)
	require.NoError(t, err)
	require.Len(t, source.Rows, 2)

	second := source.Rows[1]
	require.Equal(t, "Estado do Ceará", second.Get("contratante"))
	require.Equal(t, "", second.Get("contratado"))
	require.Equal(t, "", second.Get("objeto"))
	require.True(t, second.Has("objeto"))
	require.False(t, second.Has("coluna_inexistente"))
}

func TestReadSourceSkipsEmptyRowsButKeepsIndexes(t *testing.T) {
	reader := buildWorkbook(t, [][]interface{}{
		{"Concedente", "Convenente"},
		{"SEDUC", "Município A"},
		{"", ""},
		{"SESA", "Município B"},
	})

	source, err := ReadSource("convenios.xlsx", reader)
	require.NoError(t, err)
	require.Len(t, source.Rows, 2)
	require.Equal(t, 2, source.Rows[0].Index)
	require.Equal(t, 4, source.Rows[1].Index)
	require.Equal(t, "SESA", source.Rows[1].Get("concedente"))
}

func TestReadSourceKeepsNativeDateCells(t *testing.T) {
	// Planilhas reais trazem datas tipadas, não texto. A leitura devolve o
	// número serial da célula em vez do texto formatado, para que a coerção
	// recupere a data.
	reader := buildWorkbook(t, [][]interface{}{
		{"Número do Contrato", "Data de Assinatura", "Valor Pago"},
		{"CT-001/2020", time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC), 10000.0},
	})

	source, err := ReadSource("contratos.xlsx", reader)
	require.NoError(t, err)
	require.Len(t, source.Rows, 1)

	row := source.Rows[0]
	parsed := CoerceDate(row.Get("data_de_assinatura"))
	require.NotNil(t, parsed)
	require.Equal(t, time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC), *parsed)

	paid := CoerceMoney(row.Get("valor_pago"))
	require.NotNil(t, paid)
	require.Equal(t, 10000.0, *paid)
}

func TestReadSourceRejectsEmptyWorkbook(t *testing.T) {
	_, err := ReadSource("vazio.xlsx", bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
}
