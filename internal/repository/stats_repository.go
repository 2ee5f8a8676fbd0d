package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/model"
)

// StatsRepository concentra as consultas de agregação usadas pelos
// endpoints de gráfico.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AgreementValueComparisonByYear soma valor inicial e valor atualizado dos
// convênios agrupados pelo ano da data de assinatura.
func (r *StatsRepository) AgreementValueComparisonByYear(ctx context.Context) ([]model.YearValueComparison, error) {
	rows := []model.YearValueComparison{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(YEAR FROM d.data_assinatura)::int AS ano,
			COALESCE(SUM(v.valor_inicial_total), 0) AS valor_original,
			COALESCE(SUM(v.valor_atualizado_total), 0) AS valor_atualizado
		FROM agreements a
		JOIN agreement_dates d ON d.agreement_id = a.id
		JOIN agreement_values v ON v.agreement_id = a.id
		WHERE d.data_assinatura IS NOT NULL
		GROUP BY ano
		ORDER BY ano ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AgreementPaidByYear soma o valor pago dos convênios agrupados pelo ano da
// data de assinatura.
func (r *StatsRepository) AgreementPaidByYear(ctx context.Context) ([]model.YearPaid, error) {
	rows := []model.YearPaid{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(YEAR FROM d.data_assinatura)::int AS ano,
			COALESCE(SUM(v.valor_pago), 0) AS valor_pago
		FROM agreements a
		JOIN agreement_dates d ON d.agreement_id = a.id
		JOIN agreement_values v ON v.agreement_id = a.id
		WHERE d.data_assinatura IS NOT NULL
		GROUP BY ano
		ORDER BY ano ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AccountabilityStatusCounts conta convênios por situação da prestação de
// contas, do status mais frequente para o menos frequente.
func (r *StatsRepository) AccountabilityStatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	rows := []model.StatusCount{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT ac.status, COUNT(*) AS quantidade
		FROM accountability ac
		JOIN agreements a ON a.id = ac.agreement_id
		GROUP BY ac.status
		ORDER BY quantidade DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
