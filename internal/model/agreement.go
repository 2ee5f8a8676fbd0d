package model

import "time"

// Agreement é a entidade principal de um convênio. Os campos de cabeçalho são
// anuláveis porque os arquivos fonte trazem linhas incompletas.
type Agreement struct {
	ID                  int64   `json:"id"`
	CodigoPlanoTrabalho *string `json:"codigo_plano_trabalho"`
	Concedente          *string `json:"concedente"`
	Convenente          *string `json:"convenente"`
	Objeto              *string `json:"objeto"`
}

// AgreementValues guarda o detalhamento financeiro de um convênio.
type AgreementValues struct {
	ID                                  int64    `json:"id"`
	AgreementID                         int64    `json:"agreement_id"`
	ValorInicialTotal                   *float64 `json:"valor_inicial_total"`
	ValorInicialRepasseConcedente       *float64 `json:"valor_inicial_repasse_concedente"`
	ValorInicialContrapartidaConvenente *float64 `json:"valor_inicial_contrapartida_convenente"`
	ValorAtualizadoTotal                *float64 `json:"valor_atualizado_total"`
	ValorPago                           *float64 `json:"valor_pago"`
}

// AgreementDates guarda as datas de ciclo de vida de um convênio.
type AgreementDates struct {
	ID                int64      `json:"id"`
	AgreementID       int64      `json:"agreement_id"`
	DataAssinatura    *time.Time `json:"data_assinatura"`
	DataTermino       *time.Time `json:"data_termino"`
	DataPublicacaoCE  *time.Time `json:"data_publicacao_ce"`
	DataPublicacaoDOE *time.Time `json:"data_publicacao_doe"`
}

// Accountability guarda a situação de prestação de contas de um convênio.
type Accountability struct {
	ID            int64  `json:"id"`
	AgreementID   int64  `json:"agreement_id"`
	Status        string `json:"status"`
	Justificativa string `json:"justificativa"`
	TipoPrestacao string `json:"tipo_prestacao"`
	Notas         string `json:"notas"`
}
