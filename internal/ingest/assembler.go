package ingest

import "github.com/caioln/sfa-service/internal/model"

// Nomes canônicos das colunas das planilhas de contratos.
const (
	colNumeroContrato = "numero_contrato"
	colCpfCnpj        = "cpf/cnpj"
	colContratante    = "contratante"
	colContratado     = "contratado"
	colTipoObjeto     = "tipo_objeto"
	colObjeto         = "objeto"

	colValorOriginal   = "valor_original"
	colValorAditivo    = "valor_aditivo"
	colValorAtualizado = "valor_atualizado"
	colValorEmpenhado  = "valor_empenhado"
	colValorPago       = "valor_pago"

	colDataAssinatura      = "data_de_assinatura"
	colDataTerminoOriginal = "data_de_termino_original"
	colDataTerminoAditivo  = "data_de_termino_apos_aditivo"
	colDataRescisao        = "data_de_rescisao"
	colDataPublicacaoDOE   = "data_publicacao_no_doe"

	colNumeroProcesso      = "numero_processo"
	colModalidadeLicitacao = "modalidade_de_licitacao"
	colJustificativa       = "justificativa"
	colSituacaoFisica      = "situacao_fisica"
)

// Nomes canônicos das colunas da planilha de convênios.
const (
	colCodigoPlanoTrabalho = "codigo_plano_de_trabalho"
	colConcedente          = "concedente"
	colConvenente          = "convenente"

	colValorInicialTotal         = "valor_inicial_total"
	colValorInicialRepasse       = "valor_inicial_do_repasse_do_concedente"
	colValorInicialContrapartida = "valor_inicial_da_contrapartida_do_convenente/beneficiario"
	colValorAtualizadoTotal      = "valor_atualizado_total"

	colDataTerminoApostilamento = "data_de_termino_apos_aditivo/apostilamento"
	colDataPublicacaoCE         = "data_de_publicacao_na_plataforma_ceara_transparente"

	colSituacaoPrestacao = "situacao_da_prestacao_de_contas"
	colTipoPrestacao     = "tipo_de_prestacao_de_contas"
)

// As funções abaixo são construção pura: nada é persistido aqui. As famílias
// filhas recebem o identificador do pai já persistido; quando o arquivo fonte
// não traz nenhuma coluna da família, a função devolve nil e o pipeline não
// cria a linha.

func ContractFromRow(row Row) model.Contract {
	return model.Contract{
		NumeroContrato: Text(row.Get(colNumeroContrato)),
		CpfCnpj:        Text(row.Get(colCpfCnpj)),
		Contratante:    Text(row.Get(colContratante)),
		Contratado:     Text(row.Get(colContratado)),
		TipoObjeto:     TextOrNil(row.Get(colTipoObjeto)),
		Objeto:         Text(row.Get(colObjeto)),
	}
}

func ContractValuesFromRow(row Row, contractID int64) *model.ContractValues {
	if !row.HasAny(colValorOriginal, colValorAditivo, colValorAtualizado, colValorEmpenhado, colValorPago) {
		return nil
	}
	return &model.ContractValues{
		ContractID:      contractID,
		ValorOriginal:   CoerceMoney(row.Get(colValorOriginal)),
		ValorAditivo:    CoerceMoney(row.Get(colValorAditivo)),
		ValorAtualizado: CoerceMoney(row.Get(colValorAtualizado)),
		ValorEmpenhado:  CoerceMoney(row.Get(colValorEmpenhado)),
		ValorPago:       CoerceMoney(row.Get(colValorPago)),
	}
}

func ContractDatesFromRow(row Row, contractID int64) *model.ContractDates {
	if !row.HasAny(colDataAssinatura, colDataTerminoOriginal, colDataTerminoAditivo, colDataRescisao, colDataPublicacaoDOE) {
		return nil
	}
	return &model.ContractDates{
		ContractID:             contractID,
		DataAssinatura:         CoerceDate(row.Get(colDataAssinatura)),
		DataTerminoOriginal:    CoerceDate(row.Get(colDataTerminoOriginal)),
		DataTerminoAposAditivo: CoerceDate(row.Get(colDataTerminoAditivo)),
		DataRescisao:           CoerceDate(row.Get(colDataRescisao)),
		DataPublicacaoDOE:      CoerceDate(row.Get(colDataPublicacaoDOE)),
	}
}

func ProcessFromRow(row Row, contractID int64) *model.AdministrativeProcess {
	if !row.HasAny(colNumeroProcesso, colModalidadeLicitacao, colSituacaoFisica) {
		return nil
	}
	return &model.AdministrativeProcess{
		ContractID:          contractID,
		NumeroProcesso:      Text(row.Get(colNumeroProcesso)),
		ModalidadeLicitacao: Text(row.Get(colModalidadeLicitacao)),
		Justificativa:       Text(row.Get(colJustificativa)),
		SituacaoFisica:      Text(row.Get(colSituacaoFisica)),
	}
}

func AgreementFromRow(row Row) model.Agreement {
	return model.Agreement{
		CodigoPlanoTrabalho: TextOrNil(row.Get(colCodigoPlanoTrabalho)),
		Concedente:          TextOrNil(row.Get(colConcedente)),
		Convenente:          TextOrNil(row.Get(colConvenente)),
		Objeto:              TextOrNil(row.Get(colObjeto)),
	}
}

func AgreementValuesFromRow(row Row, agreementID int64) *model.AgreementValues {
	if !row.HasAny(colValorInicialTotal, colValorInicialRepasse, colValorInicialContrapartida, colValorAtualizadoTotal, colValorPago) {
		return nil
	}
	return &model.AgreementValues{
		AgreementID:                         agreementID,
		ValorInicialTotal:                   CoerceMoney(row.Get(colValorInicialTotal)),
		ValorInicialRepasseConcedente:       CoerceMoney(row.Get(colValorInicialRepasse)),
		ValorInicialContrapartidaConvenente: CoerceMoney(row.Get(colValorInicialContrapartida)),
		ValorAtualizadoTotal:                CoerceMoney(row.Get(colValorAtualizadoTotal)),
		ValorPago:                           CoerceMoney(row.Get(colValorPago)),
	}
}

func AgreementDatesFromRow(row Row, agreementID int64) *model.AgreementDates {
	if !row.HasAny(colDataAssinatura, colDataTerminoApostilamento, colDataPublicacaoCE, colDataPublicacaoDOE) {
		return nil
	}
	return &model.AgreementDates{
		AgreementID:       agreementID,
		DataAssinatura:    CoerceDate(row.Get(colDataAssinatura)),
		DataTermino:       CoerceDate(row.Get(colDataTerminoApostilamento)),
		DataPublicacaoCE:  CoerceDate(row.Get(colDataPublicacaoCE)),
		DataPublicacaoDOE: CoerceDate(row.Get(colDataPublicacaoDOE)),
	}
}

func AccountabilityFromRow(row Row, agreementID int64) *model.Accountability {
	if !row.HasAny(colSituacaoPrestacao, colTipoPrestacao) {
		return nil
	}
	return &model.Accountability{
		AgreementID:   agreementID,
		Status:        Text(row.Get(colSituacaoPrestacao)),
		TipoPrestacao: Text(row.Get(colTipoPrestacao)),
	}
}
