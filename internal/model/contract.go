package model

import "time"

// Contract é a entidade principal de um contrato público. As famílias filhas
// (valores, datas, processos administrativos) referenciam contracts.id com
// ON DELETE CASCADE.
type Contract struct {
	ID             int64   `json:"id"`
	NumeroContrato string  `json:"numero_contrato"`
	CpfCnpj        string  `json:"cpf_cnpj"`
	Contratante    string  `json:"contratante"`
	Contratado     string  `json:"contratado"`
	TipoObjeto     *string `json:"tipo_objeto"`
	Objeto         string  `json:"objeto"`
}

// ContractValues guarda o detalhamento financeiro de um contrato.
// Campos nulos indicam ausência do dado na fonte, nunca zero de negócio.
type ContractValues struct {
	ID              int64    `json:"id"`
	ContractID      int64    `json:"contract_id"`
	ValorOriginal   *float64 `json:"valor_original"`
	ValorAditivo    *float64 `json:"valor_aditivo"`
	ValorAtualizado *float64 `json:"valor_atualizado"`
	ValorEmpenhado  *float64 `json:"valor_empenhado"`
	ValorPago       *float64 `json:"valor_pago"`
}

// ContractDates guarda as datas de ciclo de vida de um contrato.
// Uma data nula significa célula ausente ou não interpretável na fonte.
type ContractDates struct {
	ID                     int64      `json:"id"`
	ContractID             int64      `json:"contract_id"`
	DataAssinatura         *time.Time `json:"data_assinatura"`
	DataTerminoOriginal    *time.Time `json:"data_termino_original"`
	DataTerminoAposAditivo *time.Time `json:"data_termino_apos_aditivo"`
	DataRescisao           *time.Time `json:"data_rescisao"`
	DataPublicacaoDOE      *time.Time `json:"data_publicacao_doe"`
}

// ContractDocument reúne o contrato com suas famílias financeiras para a
// ficha em PDF. Valores e datas podem faltar quando a fonte não os trouxe.
type ContractDocument struct {
	Contract Contract
	Values   *ContractValues
	Dates    *ContractDates
}

// AdministrativeProcess guarda os metadados de licitação de um contrato.
type AdministrativeProcess struct {
	ID                  int64  `json:"id"`
	ContractID          int64  `json:"contract_id"`
	NumeroProcesso      string `json:"numero_processo"`
	ModalidadeLicitacao string `json:"modalidade_licitacao"`
	Justificativa       string `json:"justificativa"`
	SituacaoFisica      string `json:"situacao_fisica"`
}
