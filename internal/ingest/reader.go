package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Row é uma linha da fonte, indexada pela posição real na planilha e acessada
// pelo nome normalizado da coluna. Colunas ausentes no arquivo devolvem célula
// vazia em vez de deslocar as demais.
type Row struct {
	Index int
	cells map[string]string
}

// Get devolve a célula bruta da coluna, "" quando a coluna não existe.
func (r Row) Get(column string) string {
	return r.cells[column]
}

// Has informa se a coluna existe no arquivo fonte.
func (r Row) Has(column string) bool {
	_, ok := r.cells[column]
	return ok
}

// HasAny informa se ao menos uma das colunas existe no arquivo fonte.
func (r Row) HasAny(columns ...string) bool {
	for _, column := range columns {
		if r.Has(column) {
			return true
		}
	}
	return false
}

// Source é um arquivo tabular já lido: cabeçalho normalizado uma única vez e
// linhas alinhadas por índice explícito.
type Source struct {
	Name    string
	Headers []string
	Rows    []Row
}

// ReadSource lê a primeira aba de uma planilha xlsx. A primeira linha é o
// cabeçalho; linhas totalmente vazias são descartadas.
func ReadSource(name string, r io.Reader) (*Source, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", name)
	}

	// RawCellValue evita o formato de exibição: células de data tipadas chegam
	// como número serial e células numéricas com ponto decimal, nunca como o
	// texto formatado da planilha.
	rawRows, err := file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(rawRows) == 0 {
		return nil, fmt.Errorf("%s: empty sheet", name)
	}

	headers := make([]string, len(rawRows[0]))
	for i, raw := range rawRows[0] {
		headers[i] = NormalizeHeader(raw)
	}

	source := &Source{Name: name, Headers: headers}
	for index, rawCells := range rawRows[1:] {
		cells := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(rawCells) {
				value = rawCells[i]
			}
			cells[header] = value
			if !IsAbsent(value) {
				empty = false
			}
		}
		if empty {
			continue
		}
		source.Rows = append(source.Rows, Row{Index: index + 2, cells: cells})
	}
	return source, nil
}
