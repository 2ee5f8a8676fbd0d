package model

import "time"

// Filtros de listagem. Campos nil não participam da consulta; os presentes
// são combinados com AND.

type ContractFilter struct {
	NumeroContrato *string
	CpfCnpj        *string
	Contratante    *string
	Contratado     *string
	TipoObjeto     *string
	Objeto         *string // substring, case-insensitive
}

type ContractValuesFilter struct {
	ContractID         *int64
	MinValorOriginal   *float64
	MaxValorOriginal   *float64
	MinValorAditivo    *float64
	MaxValorAditivo    *float64
	MinValorAtualizado *float64
	MaxValorAtualizado *float64
	MinValorEmpenhado  *float64
	MaxValorEmpenhado  *float64
	MinValorPago       *float64
	MaxValorPago       *float64
}

type ContractDatesFilter struct {
	ContractID *int64
}

type ProcessFilter struct {
	ContractID *int64
}

type AgreementFilter struct {
	CodigoPlanoTrabalho *string
	Concedente          *string // substring, case-insensitive
	Convenente          *string // substring, case-insensitive
	Objeto              *string // substring, case-insensitive
}

type AgreementValuesFilter struct {
	AgreementID *int64
}

type AgreementDatesFilter struct {
	AgreementID *int64
}

type AccountabilityFilter struct {
	AgreementID   *int64
	Status        *string
	TipoPrestacao *string
}

// Estruturas de atualização parcial: cada campo é aplicado somente quando
// presente, substituindo a cópia dinâmica de atributos do legado.

type ContractUpdate struct {
	NumeroContrato *string
	CpfCnpj        *string
	Contratante    *string
	Contratado     *string
	TipoObjeto     *string
	Objeto         *string
}

type ContractValuesUpdate struct {
	ValorOriginal   *float64
	ValorAditivo    *float64
	ValorAtualizado *float64
	ValorEmpenhado  *float64
	ValorPago       *float64
}

type ContractDatesUpdate struct {
	DataAssinatura         *time.Time
	DataTerminoOriginal    *time.Time
	DataTerminoAposAditivo *time.Time
	DataRescisao           *time.Time
	DataPublicacaoDOE      *time.Time
}

type ProcessUpdate struct {
	NumeroProcesso      *string
	ModalidadeLicitacao *string
	Justificativa       *string
	SituacaoFisica      *string
}

type AgreementUpdate struct {
	CodigoPlanoTrabalho *string
	Concedente          *string
	Convenente          *string
	Objeto              *string
}

type AgreementValuesUpdate struct {
	ValorInicialTotal                   *float64
	ValorInicialRepasseConcedente       *float64
	ValorInicialContrapartidaConvenente *float64
	ValorAtualizadoTotal                *float64
	ValorPago                           *float64
}

type AgreementDatesUpdate struct {
	DataAssinatura    *time.Time
	DataTermino       *time.Time
	DataPublicacaoCE  *time.Time
	DataPublicacaoDOE *time.Time
}

type AccountabilityUpdate struct {
	Status        *string
	Justificativa *string
	TipoPrestacao *string
	Notas         *string
}
