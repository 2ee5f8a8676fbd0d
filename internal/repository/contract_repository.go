package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// CreateContractFamily persiste um contrato e suas famílias filhas em uma
// única transação. As filhas são construídas pelo callback depois que o
// identificador do pai existe; callback devolvendo nil para uma família
// significa que a fonte não traz aquelas colunas.
func (r *ContractRepository) CreateContractFamily(
	ctx context.Context,
	contract model.Contract,
	children func(contractID int64) (*model.ContractValues, *model.ContractDates, *model.AdministrativeProcess),
) (int64, error) {
	var contractID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO contracts (numero_contrato, cpf_cnpj, contratante, contratado, tipo_objeto, objeto)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			contract.NumeroContrato,
			contract.CpfCnpj,
			contract.Contratante,
			contract.Contratado,
			contract.TipoObjeto,
			contract.Objeto,
		).Scan(&contractID).Error
		if err != nil {
			return err
		}

		values, dates, process := children(contractID)
		if values != nil {
			if err := insertContractValues(tx, values); err != nil {
				return err
			}
		}
		if dates != nil {
			if err := insertContractDates(tx, dates); err != nil {
				return err
			}
		}
		if process != nil {
			if err := insertProcess(tx, process); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return contractID, nil
}

func insertContractValues(tx *gorm.DB, values *model.ContractValues) error {
	return tx.Raw(`
		INSERT INTO contract_values (contract_id, valor_original, valor_aditivo, valor_atualizado, valor_empenhado, valor_pago)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		values.ContractID,
		values.ValorOriginal,
		values.ValorAditivo,
		values.ValorAtualizado,
		values.ValorEmpenhado,
		values.ValorPago,
	).Scan(&values.ID).Error
}

func insertContractDates(tx *gorm.DB, dates *model.ContractDates) error {
	return tx.Raw(`
		INSERT INTO contract_dates (contract_id, data_assinatura, data_termino_original, data_termino_apos_aditivo, data_rescisao, data_publicacao_doe)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		dates.ContractID,
		dates.DataAssinatura,
		dates.DataTerminoOriginal,
		dates.DataTerminoAposAditivo,
		dates.DataRescisao,
		dates.DataPublicacaoDOE,
	).Scan(&dates.ID).Error
}

func (r *ContractRepository) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, numero_contrato, cpf_cnpj, contratante, contratado, tipo_objeto, objeto
		FROM contracts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func contractConditions(f model.ContractFilter) []condition {
	var conds []condition
	if f.NumeroContrato != nil {
		conds = append(conds, eq("numero_contrato", *f.NumeroContrato))
	}
	if f.CpfCnpj != nil {
		conds = append(conds, eq("cpf_cnpj", *f.CpfCnpj))
	}
	if f.Contratante != nil {
		conds = append(conds, eq("contratante", *f.Contratante))
	}
	if f.Contratado != nil {
		conds = append(conds, eq("contratado", *f.Contratado))
	}
	if f.TipoObjeto != nil {
		conds = append(conds, eq("tipo_objeto", *f.TipoObjeto))
	}
	if f.Objeto != nil {
		conds = append(conds, contains("objeto", *f.Objeto))
	}
	return conds
}

func (r *ContractRepository) ListContracts(ctx context.Context, f model.ContractFilter, offset, limit int) ([]model.Contract, error) {
	baseQuery := `
		SELECT id, numero_contrato, cpf_cnpj, contratante, contratado, tipo_objeto, objeto
		FROM contracts`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, contractConditions(f))
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	contracts := []model.Contract{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) CountContracts(ctx context.Context, f model.ContractFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM contracts`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, contractConditions(f))

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ContractRepository) UpdateContract(ctx context.Context, contract model.Contract) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contracts
		SET numero_contrato = ?, cpf_cnpj = ?, contratante = ?, contratado = ?, tipo_objeto = ?, objeto = ?
		WHERE id = ?
	`,
		contract.NumeroContrato,
		contract.CpfCnpj,
		contract.Contratante,
		contract.Contratado,
		contract.TipoObjeto,
		contract.Objeto,
		contract.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteContract remove o contrato; valores, datas e processos filhos caem
// por cascata no banco.
func (r *ContractRepository) DeleteContract(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contracts WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) GetContractValues(ctx context.Context, id int64) (*model.ContractValues, error) {
	var values model.ContractValues
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, valor_original, valor_aditivo, valor_atualizado, valor_empenhado, valor_pago
		FROM contract_values
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

func contractValuesConditions(f model.ContractValuesFilter) []condition {
	var conds []condition
	if f.ContractID != nil {
		conds = append(conds, eq("contract_id", *f.ContractID))
	}
	ranges := []struct {
		column   string
		min, max *float64
	}{
		{"valor_original", f.MinValorOriginal, f.MaxValorOriginal},
		{"valor_aditivo", f.MinValorAditivo, f.MaxValorAditivo},
		{"valor_atualizado", f.MinValorAtualizado, f.MaxValorAtualizado},
		{"valor_empenhado", f.MinValorEmpenhado, f.MaxValorEmpenhado},
		{"valor_pago", f.MinValorPago, f.MaxValorPago},
	}
	for _, bound := range ranges {
		if bound.min != nil {
			conds = append(conds, gte(bound.column, *bound.min))
		}
		if bound.max != nil {
			conds = append(conds, lte(bound.column, *bound.max))
		}
	}
	return conds
}

func (r *ContractRepository) ListContractValues(ctx context.Context, f model.ContractValuesFilter, offset, limit int) ([]model.ContractValues, error) {
	baseQuery := `
		SELECT id, contract_id, valor_original, valor_aditivo, valor_atualizado, valor_empenhado, valor_pago
		FROM contract_values`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, contractValuesConditions(f))
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	values := []model.ContractValues{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *ContractRepository) CountContractValues(ctx context.Context, f model.ContractValuesFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM contract_values`
	var args []interface{}
	baseQuery, args = appendWhere(baseQuery, args, contractValuesConditions(f))

	var total int64
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ContractRepository) UpdateContractValues(ctx context.Context, values model.ContractValues) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contract_values
		SET valor_original = ?, valor_aditivo = ?, valor_atualizado = ?, valor_empenhado = ?, valor_pago = ?
		WHERE id = ?
	`,
		values.ValorOriginal,
		values.ValorAditivo,
		values.ValorAtualizado,
		values.ValorEmpenhado,
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

func (r *ContractRepository) DeleteContractValues(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contract_values WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) GetContractDates(ctx context.Context, id int64) (*model.ContractDates, error) {
	var dates model.ContractDates
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, contract_id, data_assinatura, data_termino_original, data_termino_apos_aditivo, data_rescisao, data_publicacao_doe
		FROM contract_dates
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

func (r *ContractRepository) ListContractDates(ctx context.Context, f model.ContractDatesFilter, offset, limit int) ([]model.ContractDates, error) {
	baseQuery := `
		SELECT id, contract_id, data_assinatura, data_termino_original, data_termino_apos_aditivo, data_rescisao, data_publicacao_doe
		FROM contract_dates`
	var args []interface{}
	var conds []condition
	if f.ContractID != nil {
		conds = append(conds, eq("contract_id", *f.ContractID))
	}
	baseQuery, args = appendWhere(baseQuery, args, conds)
	baseQuery += " ORDER BY id ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	dates := []model.ContractDates{}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *ContractRepository) CountContractDates(ctx context.Context, f model.ContractDatesFilter) (int64, error) {
	baseQuery := `SELECT COUNT(*) FROM contract_dates`
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

func (r *ContractRepository) UpdateContractDates(ctx context.Context, dates model.ContractDates) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contract_dates
		SET data_assinatura = ?, data_termino_original = ?, data_termino_apos_aditivo = ?, data_rescisao = ?, data_publicacao_doe = ?
		WHERE id = ?
	`,
		dates.DataAssinatura,
		dates.DataTerminoOriginal,
		dates.DataTerminoAposAditivo,
		dates.DataRescisao,
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

func (r *ContractRepository) DeleteContractDates(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contract_dates WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
