package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/caioln/sfa-service/internal/config"
	"github.com/caioln/sfa-service/internal/ingest"
	"github.com/caioln/sfa-service/internal/model"
)

// AgreementStore é o recorte de persistência que o serviço de convênios usa.
type AgreementStore interface {
	CreateAgreementFamily(ctx context.Context, agreement model.Agreement, children func(agreementID int64) (*model.AgreementValues, *model.AgreementDates, *model.Accountability)) (int64, error)
	GetAgreement(ctx context.Context, id int64) (*model.Agreement, error)
	ListAgreements(ctx context.Context, f model.AgreementFilter, offset, limit int) ([]model.Agreement, error)
	CountAgreements(ctx context.Context, f model.AgreementFilter) (int64, error)
	UpdateAgreement(ctx context.Context, agreement model.Agreement) error
	DeleteAgreement(ctx context.Context, id int64) error
	DeleteAllAgreements(ctx context.Context) error

	GetAgreementValues(ctx context.Context, id int64) (*model.AgreementValues, error)
	ListAgreementValues(ctx context.Context, f model.AgreementValuesFilter, offset, limit int) ([]model.AgreementValues, error)
	CountAgreementValues(ctx context.Context, f model.AgreementValuesFilter) (int64, error)
	UpdateAgreementValues(ctx context.Context, values model.AgreementValues) error
	DeleteAgreementValues(ctx context.Context, id int64) error

	GetAgreementDates(ctx context.Context, id int64) (*model.AgreementDates, error)
	ListAgreementDates(ctx context.Context, f model.AgreementDatesFilter, offset, limit int) ([]model.AgreementDates, error)
	CountAgreementDates(ctx context.Context, f model.AgreementDatesFilter) (int64, error)
	UpdateAgreementDates(ctx context.Context, dates model.AgreementDates) error
	DeleteAgreementDates(ctx context.Context, id int64) error
}

// StatsStore fornece as agregações usadas nos gráficos de convênios.
type StatsStore interface {
	AgreementValueComparisonByYear(ctx context.Context) ([]model.YearValueComparison, error)
	AgreementPaidByYear(ctx context.Context) ([]model.YearPaid, error)
}

// ChartGenerator monta pastas de trabalho com os gráficos de convênios.
type ChartGenerator interface {
	ValueComparisonWorkbook(rows []model.YearValueComparison) ([]byte, error)
	PaidEvolutionWorkbook(rows []model.YearPaid) ([]byte, error)
}

type AgreementService struct {
	store  AgreementStore
	stats  StatsStore
	charts ChartGenerator
	log    zerolog.Logger
	policy ingest.Policy
}

func NewAgreementService(store AgreementStore, stats StatsStore, charts ChartGenerator, cfg *config.Config, log zerolog.Logger) *AgreementService {
	return &AgreementService{
		store:  store,
		stats:  stats,
		charts: charts,
		log:    log,
		policy: ingest.Policy{ContinueOnRowError: cfg.Import.ContinueOnRowError},
	}
}

// ImportAgreements ingere planilhas de convênios. Cada linha vira um convênio
// com valores, datas e prestação de contas na mesma transação.
func (s *AgreementService) ImportAgreements(ctx context.Context, sources []*ingest.Source) (*ingest.BatchReport, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyBatch
	}

	pipeline := ingest.NewPipeline(s.log, s.policy)
	return pipeline.Run(ctx, sources, func(ctx context.Context, row ingest.Row) error {
		_, err := s.store.CreateAgreementFamily(ctx, ingest.AgreementFromRow(row), func(agreementID int64) (*model.AgreementValues, *model.AgreementDates, *model.Accountability) {
			return ingest.AgreementValuesFromRow(row, agreementID),
				ingest.AgreementDatesFromRow(row, agreementID),
				ingest.AccountabilityFromRow(row, agreementID)
		})
		return err
	})
}

func (s *AgreementService) GetAgreement(ctx context.Context, id int64) (*model.Agreement, error) {
	agreement, err := s.store.GetAgreement(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return agreement, nil
}

func (s *AgreementService) ListAgreements(ctx context.Context, f model.AgreementFilter, page, limit int) ([]model.Agreement, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	agreements, err := s.store.ListAgreements(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountAgreements(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return agreements, newPageInfo(page, limit, total), nil
}

func (s *AgreementService) CountAgreements(ctx context.Context, f model.AgreementFilter) (int64, error) {
	return s.store.CountAgreements(ctx, f)
}

func (s *AgreementService) UpdateAgreement(ctx context.Context, id int64, update model.AgreementUpdate) (*model.Agreement, error) {
	agreement, err := s.store.GetAgreement(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.CodigoPlanoTrabalho != nil {
		agreement.CodigoPlanoTrabalho = update.CodigoPlanoTrabalho
	}
	if update.Concedente != nil {
		agreement.Concedente = update.Concedente
	}
	if update.Convenente != nil {
		agreement.Convenente = update.Convenente
	}
	if update.Objeto != nil {
		agreement.Objeto = update.Objeto
	}
	if err := s.store.UpdateAgreement(ctx, *agreement); err != nil {
		return nil, mapStoreError(err)
	}
	return agreement, nil
}

func (s *AgreementService) DeleteAgreement(ctx context.Context, id int64) error {
	if err := s.store.DeleteAgreement(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// DeleteAllAgreements zera a base de convênios e reinicia as sequências.
func (s *AgreementService) DeleteAllAgreements(ctx context.Context) error {
	return s.store.DeleteAllAgreements(ctx)
}

func (s *AgreementService) GetAgreementValues(ctx context.Context, id int64) (*model.AgreementValues, error) {
	values, err := s.store.GetAgreementValues(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return values, nil
}

func (s *AgreementService) ListAgreementValues(ctx context.Context, f model.AgreementValuesFilter, page, limit int) ([]model.AgreementValues, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	values, err := s.store.ListAgreementValues(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountAgreementValues(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return values, newPageInfo(page, limit, total), nil
}

func (s *AgreementService) UpdateAgreementValues(ctx context.Context, id int64, update model.AgreementValuesUpdate) (*model.AgreementValues, error) {
	values, err := s.store.GetAgreementValues(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.ValorInicialTotal != nil {
		values.ValorInicialTotal = update.ValorInicialTotal
	}
	if update.ValorInicialRepasseConcedente != nil {
		values.ValorInicialRepasseConcedente = update.ValorInicialRepasseConcedente
	}
	if update.ValorInicialContrapartidaConvenente != nil {
		values.ValorInicialContrapartidaConvenente = update.ValorInicialContrapartidaConvenente
	}
	if update.ValorAtualizadoTotal != nil {
		values.ValorAtualizadoTotal = update.ValorAtualizadoTotal
	}
	if update.ValorPago != nil {
		values.ValorPago = update.ValorPago
	}
	if err := s.store.UpdateAgreementValues(ctx, *values); err != nil {
		return nil, mapStoreError(err)
	}
	return values, nil
}

func (s *AgreementService) DeleteAgreementValues(ctx context.Context, id int64) error {
	if err := s.store.DeleteAgreementValues(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (s *AgreementService) GetAgreementDates(ctx context.Context, id int64) (*model.AgreementDates, error) {
	dates, err := s.store.GetAgreementDates(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return dates, nil
}

func (s *AgreementService) ListAgreementDates(ctx context.Context, f model.AgreementDatesFilter, page, limit int) ([]model.AgreementDates, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	dates, err := s.store.ListAgreementDates(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountAgreementDates(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return dates, newPageInfo(page, limit, total), nil
}

func (s *AgreementService) CountAgreementDates(ctx context.Context, f model.AgreementDatesFilter) (int64, error) {
	return s.store.CountAgreementDates(ctx, f)
}

func (s *AgreementService) UpdateAgreementDates(ctx context.Context, id int64, update model.AgreementDatesUpdate) (*model.AgreementDates, error) {
	dates, err := s.store.GetAgreementDates(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.DataAssinatura != nil {
		dates.DataAssinatura = update.DataAssinatura
	}
	if update.DataTermino != nil {
		dates.DataTermino = update.DataTermino
	}
	if update.DataPublicacaoCE != nil {
		dates.DataPublicacaoCE = update.DataPublicacaoCE
	}
	if update.DataPublicacaoDOE != nil {
		dates.DataPublicacaoDOE = update.DataPublicacaoDOE
	}
	if err := s.store.UpdateAgreementDates(ctx, *dates); err != nil {
		return nil, mapStoreError(err)
	}
	return dates, nil
}

func (s *AgreementService) DeleteAgreementDates(ctx context.Context, id int64) error {
	if err := s.store.DeleteAgreementDates(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// ValueComparisonByYear devolve os totais originais e atualizados por ano
// de assinatura.
func (s *AgreementService) ValueComparisonByYear(ctx context.Context) ([]model.YearValueComparison, error) {
	return s.stats.AgreementValueComparisonByYear(ctx)
}

// PaidByYear devolve a evolução dos valores pagos por ano de assinatura.
func (s *AgreementService) PaidByYear(ctx context.Context) ([]model.YearPaid, error) {
	return s.stats.AgreementPaidByYear(ctx)
}

// ValueComparisonChart rende a comparação anual como pasta de trabalho com
// gráfico de colunas.
func (s *AgreementService) ValueComparisonChart(ctx context.Context) ([]byte, error) {
	rows, err := s.stats.AgreementValueComparisonByYear(ctx)
	if err != nil {
		return nil, err
	}
	return s.charts.ValueComparisonWorkbook(rows)
}

// PaidEvolutionChart rende a evolução dos pagamentos como pasta de trabalho
// com gráfico de linha.
func (s *AgreementService) PaidEvolutionChart(ctx context.Context) ([]byte, error) {
	rows, err := s.stats.AgreementPaidByYear(ctx)
	if err != nil {
		return nil, err
	}
	return s.charts.PaidEvolutionWorkbook(rows)
}
