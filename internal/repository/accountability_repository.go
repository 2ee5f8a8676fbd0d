package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/model"
)

type AccountabilityRepository struct {
	db *gorm.DB
}

func NewAccountabilityRepository(db *gorm.DB) *AccountabilityRepository {
	return &AccountabilityRepository{db: db}
}

func insertAccountability(tx *gorm.DB, accountability *model.Accountability) error {
	return tx.Raw(`
		INSERT INTO accountability (agreement_id, status, justificativa, tipo_prestacao, notas)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`,
		accountability.AgreementID,
		accountability.Status,
		accountability.Justificativa,
		accountability.TipoPrestacao,
		accountability.Notas,
	).Scan(&accountability.ID).Error
}

func (r *AccountabilityRepository) CreateAccountability(ctx context.Context, accountability *model.Accountability) error {
	return insertAccountability(r.db.WithContext(ctx), accountability)
}

func (r *AccountabilityRepository) GetAccountability(ctx context.Context, id int64) (*model.Accountability, error) {
	var accountability model.Accountability
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, agreement_id, status, justificativa, tipo_prestacao, notas
		FROM accountability
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&accountability).Error
	if err != nil {
		return nil, err
	}
	if accountability.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &accountability, nil
}

func accountabilityConditions(f model.AccountabilityFilter) []condition {
	var conds []condition
	if f.AgreementID != nil {
		conds = append(conds, eq("agreement_id", *f.AgreementID))
	}
	if f.Status != nil {
		conds = append(conds, eq("status", *f.Status))
	}
	if f.TipoPrestacao != nil {
		conds = append(conds, eq("tipo_prestacao", *f.TipoPrestacao))
	}
	return conds
}

func (r *AccountabilityRepository) ListAccountabilities(ctx context.Context, f model.AccountabilityFilter, offset, limit int) ([]model.Accountability, error) {
	baseQuery := `
		SELECT id, agreement_id, status, justificativa, tipo_prestacao, notas
		FROM accountability`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, accountabilityConditions(f))
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	accountabilities := []model.Accountability{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&accountabilities).Error; err != nil {
		return nil, err
	}
	return accountabilities, nil
}

func (r *AccountabilityRepository) CountAccountabilities(ctx context.Context, f model.AccountabilityFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM accountability`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, accountabilityConditions(f))

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *AccountabilityRepository) UpdateAccountability(ctx context.Context, accountability model.Accountability) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE accountability
		SET status = ?, justificativa = ?, tipo_prestacao = ?, notas = ?
		WHERE id = ?
	`,
		accountability.Status,
		accountability.Justificativa,
		accountability.TipoPrestacao,
		accountability.Notas,
		accountability.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AccountabilityRepository) DeleteAccountability(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM accountability WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
