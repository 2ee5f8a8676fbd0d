package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Policy define o comportamento do pipeline diante de uma linha com falha:
// abortar o lote (padrão) ou pular a linha e seguir. A escolha é explícita,
// nunca um acidente de propagação de erro.
type Policy struct {
	ContinueOnRowError bool
}

// RowHandler persiste uma linha da fonte. A implementação deve cobrir o pai e
// todas as famílias filhas da linha em uma única transação.
type RowHandler func(ctx context.Context, row Row) error

type FileReport struct {
	File     string `json:"file"`
	Rows     int    `json:"rows"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

type BatchReport struct {
	BatchID uuid.UUID    `json:"batch_id"`
	Files   []FileReport `json:"files"`
}

// Pipeline dirige a importação de um lote de arquivos fonte, linha a linha,
// na ordem dos arquivos.
type Pipeline struct {
	log    zerolog.Logger
	policy Policy
}

func NewPipeline(log zerolog.Logger, policy Policy) *Pipeline {
	return &Pipeline{log: log, policy: policy}
}

// Run processa cada arquivo na ordem recebida. Linhas já persistidas
// permanecem no banco mesmo quando o lote falha adiante; o lote não é atômico
// como um todo e deve ser reexecutado do início pelo chamador.
func (p *Pipeline) Run(ctx context.Context, sources []*Source, handle RowHandler) (*BatchReport, error) {
	report := &BatchReport{BatchID: uuid.New()}

	for _, source := range sources {
		fileReport := FileReport{File: source.Name, Rows: len(source.Rows)}
		for _, row := range source.Rows {
			if err := handle(ctx, row); err != nil {
				if p.policy.ContinueOnRowError {
					fileReport.Skipped++
					p.log.Warn().
						Str("batch_id", report.BatchID.String()).
						Str("file", source.Name).
						Int("row", row.Index).
						Err(err).
						Msg("skipping row")
					continue
				}
				report.Files = append(report.Files, fileReport)
				return report, fmt.Errorf("%s row %d: %w", source.Name, row.Index, err)
			}
			fileReport.Imported++
		}
		report.Files = append(report.Files, fileReport)
		p.log.Info().
			Str("batch_id", report.BatchID.String()).
			Str("file", source.Name).
			Int("imported", fileReport.Imported).
			Int("skipped", fileReport.Skipped).
			Msg("file imported")
	}

	return report, nil
}
