package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/model"
)

type AgreementRepository struct {
	db *gorm.DB
}

func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

// CreateAgreementFamily persiste um convênio e suas famílias filhas em uma
// única transação, com as filhas construídas após o id do pai existir.
func (r *AgreementRepository) CreateAgreementFamily(
	ctx context.Context,
	agreement model.Agreement,
	children func(agreementID int64) (*model.AgreementValues, *model.AgreementDates, *model.Accountability),
) (int64, error) {
	var agreementID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO agreements (codigo_plano_trabalho, concedente, convenente, objeto)
			VALUES (?, ?, ?, ?)
			RETURNING id
		`,
			agreement.CodigoPlanoTrabalho,
			agreement.Concedente,
			agreement.Convenente,
			agreement.Objeto,
		).Scan(&agreementID).Error
		if err != nil {
			return err
		}

		values, dates, accountability := children(agreementID)
		if values != nil {
			if err := insertAgreementValues(tx, values); err != nil {
				return err
			}
		}
		if dates != nil {
			if err := insertAgreementDates(tx, dates); err != nil {
				return err
			}
		}
		if accountability != nil {
			if err := insertAccountability(tx, accountability); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return agreementID, nil
}

func insertAgreementValues(tx *gorm.DB, values *model.AgreementValues) error {
	return tx.Raw(`
		INSERT INTO agreement_values (agreement_id, valor_inicial_total, valor_inicial_repasse_concedente, valor_inicial_contrapartida_convenente, valor_atualizado_total, valor_pago)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		values.AgreementID,
		values.ValorInicialTotal,
		values.ValorInicialRepasseConcedente,
		values.ValorInicialContrapartidaConvenente,
		values.ValorAtualizadoTotal,
		values.ValorPago,
	).Scan(&values.ID).Error
}

func insertAgreementDates(tx *gorm.DB, dates *model.AgreementDates) error {
	return tx.Raw(`
		INSERT INTO agreement_dates (agreement_id, data_assinatura, data_termino, data_publicacao_ce, data_publicacao_doe)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`,
		dates.AgreementID,
		dates.DataAssinatura,
		dates.DataTermino,
		dates.DataPublicacaoCE,
		dates.DataPublicacaoDOE,
	).Scan(&dates.ID).Error
}

func (r *AgreementRepository) GetAgreement(ctx context.Context, id int64) (*model.Agreement, error) {
	var agreement model.Agreement
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, codigo_plano_trabalho, concedente, convenente, objeto
		FROM agreements
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&agreement).Error
	if err != nil {
		return nil, err
	}
	if agreement.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &agreement, nil
}

func agreementConditions(f model.AgreementFilter) []condition {
	var conds []condition
	if f.CodigoPlanoTrabalho != nil {
		conds = append(conds, eq("codigo_plano_trabalho", *f.CodigoPlanoTrabalho))
	}
	if f.Concedente != nil {
		conds = append(conds, contains("concedente", *f.Concedente))
	}
	if f.Convenente != nil {
		conds = append(conds, contains("convenente", *f.Convenente))
	}
	if f.Objeto != nil {
		conds = append(conds, contains("objeto", *f.Objeto))
	}
	return conds
}

func (r *AgreementRepository) ListAgreements(ctx context.Context, f model.AgreementFilter, offset, limit int) ([]model.Agreement, error) {
	baseQuery := `
		SELECT id, codigo_plano_trabalho, concedente, convenente, objeto
		FROM agreements`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, agreementConditions(f))
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	agreements := []model.Agreement{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&agreements).Error; err != nil {
		return nil, err
	}
	return agreements, nil
}

func (r *AgreementRepository) CountAgreements(ctx context.Context, f model.AgreementFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM agreements`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, agreementConditions(f))

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *AgreementRepository) UpdateAgreement(ctx context.Context, agreement model.Agreement) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE agreements
		SET codigo_plano_trabalho = ?, concedente = ?, convenente = ?, objeto = ?
		WHERE id = ?
	`,
		agreement.CodigoPlanoTrabalho,
		agreement.Concedente,
		agreement.Convenente,
		agreement.Objeto,
		agreement.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAgreement remove o convênio; valores, datas e prestação de contas
// caem por cascata.
func (r *AgreementRepository) DeleteAgreement(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM agreements WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAllAgreements limpa as tabelas de convênios e reinicia as sequências
// de id, para permitir uma reimportação completa do zero.
func (r *AgreementRepository) DeleteAllAgreements(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM agreements`).Error; err != nil {
			return err
		}
		sequences := []string{
			"agreements_id_seq",
			"agreement_values_id_seq",
			"agreement_dates_id_seq",
			"accountability_id_seq",
		}
		for _, sequence := range sequences {
			if err := tx.Exec(`ALTER SEQUENCE ` + sequence + ` RESTART WITH 1`).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AgreementRepository) GetAgreementValues(ctx context.Context, id int64) (*model.AgreementValues, error) {
	var values model.AgreementValues
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, agreement_id, valor_inicial_total, valor_inicial_repasse_concedente, valor_inicial_contrapartida_convenente, valor_atualizado_total, valor_pago
		FROM agreement_values
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&values).Error
	if err != nil {
		return nil, err
	}
	if values.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &values, nil
}

func (r *AgreementRepository) ListAgreementValues(ctx context.Context, f model.AgreementValuesFilter, offset, limit int) ([]model.AgreementValues, error) {
	baseQuery := `
		SELECT id, agreement_id, valor_inicial_total, valor_inicial_repasse_concedente, valor_inicial_contrapartida_convenente, valor_atualizado_total, valor_pago
		FROM agreement_values`
	var args []interface{}
	var conds []condition
	if f.AgreementID != nil {
		conds = append(conds, eq("agreement_id", *f.AgreementID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	values := []model.AgreementValues{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *AgreementRepository) CountAgreementValues(ctx context.Context, f model.AgreementValuesFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM agreement_values`
	var args []interface{}
	var conds []condition
	if f.AgreementID != nil {
		conds = append(conds, eq("agreement_id", *f.AgreementID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *AgreementRepository) UpdateAgreementValues(ctx context.Context, values model.AgreementValues) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE agreement_values
		SET valor_inicial_total = ?, valor_inicial_repasse_concedente = ?, valor_inicial_contrapartida_convenente = ?, valor_atualizado_total = ?, valor_pago = ?
		WHERE id = ?
	`,
		values.ValorInicialTotal,
		values.ValorInicialRepasseConcedente,
		values.ValorInicialContrapartidaConvenente,
		values.ValorAtualizadoTotal,
		values.ValorPago,
		values.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgreementRepository) DeleteAgreementValues(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM agreement_values WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgreementRepository) GetAgreementDates(ctx context.Context, id int64) (*model.AgreementDates, error) {
	var dates model.AgreementDates
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, agreement_id, data_assinatura, data_termino, data_publicacao_ce, data_publicacao_doe
		FROM agreement_dates
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&dates).Error
	if err != nil {
		return nil, err
	}
	if dates.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &dates, nil
}

func (r *AgreementRepository) ListAgreementDates(ctx context.Context, f model.AgreementDatesFilter, offset, limit int) ([]model.AgreementDates, error) {
	baseQuery := `
		SELECT id, agreement_id, data_assinatura, data_termino, data_publicacao_ce, data_publicacao_doe
		FROM agreement_dates`
	var args []interface{}
	var conds []condition
	if f.AgreementID != nil {
		conds = append(conds, eq("agreement_id", *f.AgreementID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	dates := []model.AgreementDates{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *AgreementRepository) CountAgreementDates(ctx context.Context, f model.AgreementDatesFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM agreement_dates`
	var args []interface{}
	var conds []condition
	if f.AgreementID != nil {
		conds = append(conds, eq("agreement_id", *f.AgreementID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *AgreementRepository) UpdateAgreementDates(ctx context.Context, dates model.AgreementDates) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE agreement_dates
		SET data_assinatura = ?, data_termino = ?, data_publicacao_ce = ?, data_publicacao_doe = ?
		WHERE id = ?
	`,
		dates.DataAssinatura,
		dates.DataTermino,
		dates.DataPublicacaoCE,
		dates.DataPublicacaoDOE,
		dates.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgreementRepository) DeleteAgreementDates(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM agreement_dates WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
