package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		numero_contrato TEXT NOT NULL,
		cpf_cnpj TEXT NOT NULL,
		contratante TEXT NOT NULL,
		contratado TEXT NOT NULL,
		tipo_objeto TEXT,
		objeto TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS contract_values (
		id BIGSERIAL PRIMARY KEY,
		contract_id BIGINT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		valor_original NUMERIC,
		valor_aditivo NUMERIC,
		valor_atualizado NUMERIC,
		valor_empenhado NUMERIC,
		valor_pago NUMERIC
	);`,
	`CREATE TABLE IF NOT EXISTS contract_dates (
		id BIGSERIAL PRIMARY KEY,
		contract_id BIGINT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		data_assinatura DATE,
		data_termino_original DATE,
		data_termino_apos_aditivo DATE,
		data_rescisao DATE,
		data_publicacao_doe DATE
	);`,
	`CREATE TABLE IF NOT EXISTS administrative_processes (
		id BIGSERIAL PRIMARY KEY,
		contract_id BIGINT NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		numero_processo TEXT NOT NULL DEFAULT '',
		modalidade_licitacao TEXT NOT NULL DEFAULT '',
		justificativa TEXT NOT NULL DEFAULT '',
		situacao_fisica TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS agreements (
		id BIGSERIAL PRIMARY KEY,
		codigo_plano_trabalho TEXT,
		concedente TEXT,
		convenente TEXT,
		objeto TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS agreement_values (
		id BIGSERIAL PRIMARY KEY,
		agreement_id BIGINT NOT NULL REFERENCES agreements(id) ON DELETE CASCADE,
		valor_inicial_total NUMERIC,
		valor_inicial_repasse_concedente NUMERIC,
		valor_inicial_contrapartida_convenente NUMERIC,
		valor_atualizado_total NUMERIC,
		valor_pago NUMERIC
	);`,
	`CREATE TABLE IF NOT EXISTS agreement_dates (
		id BIGSERIAL PRIMARY KEY,
		agreement_id BIGINT NOT NULL REFERENCES agreements(id) ON DELETE CASCADE,
		data_assinatura DATE,
		data_termino DATE,
		data_publicacao_ce DATE,
		data_publicacao_doe DATE
	);`,
	`CREATE TABLE IF NOT EXISTS accountability (
		id BIGSERIAL PRIMARY KEY,
		agreement_id BIGINT NOT NULL REFERENCES agreements(id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		justificativa TEXT NOT NULL DEFAULT '',
		tipo_prestacao TEXT NOT NULL DEFAULT '',
		notas TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_values_contract_id ON contract_values (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_dates_contract_id ON contract_dates (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_admin_processes_contract_id ON administrative_processes (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_agreement_values_agreement_id ON agreement_values (agreement_id);`,
	`CREATE INDEX IF NOT EXISTS idx_agreement_dates_agreement_id ON agreement_dates (agreement_id);`,
	`CREATE INDEX IF NOT EXISTS idx_accountability_agreement_id ON accountability (agreement_id);`,
	`CREATE INDEX IF NOT EXISTS idx_accountability_status ON accountability (status);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_contratante ON contracts (contratante);`,
	`CREATE INDEX IF NOT EXISTS idx_agreements_concedente ON agreements (concedente);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
