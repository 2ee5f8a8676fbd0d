package model

// YearValueComparison agrega, por ano de assinatura, a soma dos valores
// iniciais e atualizados dos convênios.
type YearValueComparison struct {
	Ano             int     `json:"ano"`
	ValorOriginal   float64 `json:"valor_original"`
	ValorAtualizado float64 `json:"valor_atualizado"`
}

// YearPaid agrega, por ano de assinatura, a soma dos valores pagos.
type YearPaid struct {
	Ano       int     `json:"ano"`
	ValorPago float64 `json:"valor_pago"`
}

// StatusCount conta convênios por situação da prestação de contas.
type StatusCount struct {
	Status     string `json:"status"`
	Quantidade int64  `json:"quantidade"`
}
