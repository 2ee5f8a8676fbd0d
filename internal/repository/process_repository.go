package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/model"
)

type ProcessRepository struct {
	db *gorm.DB
}

func NewProcessRepository(db *gorm.DB) *ProcessRepository {
	return &ProcessRepository{db: db}
}

func insertProcess(tx *gorm.DB, process *model.AdministrativeProcess) error {
	return tx.Raw(`
		INSERT INTO administrative_processes (contract_id, numero_processo, modalidade_licitacao, justificativa, situacao_fisica)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`,
		process.ContractID,
		process.NumeroProcesso,
		process.ModalidadeLicitacao,
		process.Justificativa,
		process.SituacaoFisica,
	).Scan(&process.ID).Error
}

func (r *ProcessRepository) CreateProcess(ctx context.Context, process *model.AdministrativeProcess) error {
	return insertProcess(r.db.WithContext(ctx), process)
}

func (r *ProcessRepository) GetProcess(ctx context.Context, id int64) (*model.AdministrativeProcess, error) {
	var process model.AdministrativeProcess
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, numero_processo, modalidade_licitacao, justificativa, situacao_fisica
		FROM administrative_processes
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&process).Error
	if err != nil {
		return nil, err
	}
	if process.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &process, nil
}

func (r *ProcessRepository) ListProcesses(ctx context.Context, f model.ProcessFilter, offset, limit int) ([]model.AdministrativeProcess, error) {
	baseQuery := `
		SELECT id, contract_id, numero_processo, modalidade_licitacao, justificativa, situacao_fisica
		FROM administrative_processes`
	var args []interface{}
	var conds []condition
	if f.ContractID != nil {
		conds = append(conds, eq("contract_id", *f.ContractID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	processes := []model.AdministrativeProcess{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&processes).Error; err != nil {
		return nil, err
	}
	return processes, nil
}

func (r *ProcessRepository) CountProcesses(ctx context.Context, f model.ProcessFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM administrative_processes`
	var args []interface{}
	var conds []condition
	if f.ContractID != nil {
		conds = append(conds, eq("contract_id", *f.ContractID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ProcessRepository) UpdateProcess(ctx context.Context, process model.AdministrativeProcess) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE administrative_processes
		SET numero_processo = ?, modalidade_licitacao = ?, justificativa = ?, situacao_fisica = ?
		WHERE id = ?
	`,
		process.NumeroProcesso,
		process.ModalidadeLicitacao,
		process.Justificativa,
		process.SituacaoFisica,
		process.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProcessRepository) DeleteProcess(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM administrative_processes WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
