package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Número do Contrato":           "numero_do_contrato",
		"  Valor   Original  ":         "valor_original",
		"DATA DE ASSINATURA":           "data_de_assinatura",
		"Situação da Prestação":        "situacao_da_prestacao",
		"CPF/CNPJ":                     "cpf/cnpj",
		"Modalidade de Licitação":      "modalidade_de_licitacao",
		"codigo_plano_de_trabalho":     "codigo_plano_de_trabalho",
		"Publicação na Plataforma  CE": "publicacao_na_plataforma_ce",
	}
	for input, want := range cases {
		require.Equal(t, want, NormalizeHeader(input), "input %q", input)
	}
}

func TestNormalizeHeaderIsIdempotent(t *testing.T) {
	inputs := []string{"Número do Contrato", "Valor Pago", "situação física"}
	for _, input := range inputs {
		once := NormalizeHeader(input)
		require.Equal(t, once, NormalizeHeader(once))
	}
}

func TestIsAbsent(t *testing.T) {
	for _, cell := range []string{"", "  ", "-", "nan", "NaN", "NaT", "None", "NULL"} {
		require.True(t, IsAbsent(cell), "cell %q", cell)
	}
	for _, cell := range []string{"0", "x", "R$ 1,00", "12/05/2020"} {
		require.False(t, IsAbsent(cell), "cell %q", cell)
	}
}

func TestTextOrNil(t *testing.T) {
	require.Nil(t, TextOrNil("nan"))
	require.Nil(t, TextOrNil(""))

	got := TextOrNil("  Prefeitura de Fortaleza ")
	require.NotNil(t, got)
	require.Equal(t, "Prefeitura de Fortaleza", *got)

	require.Equal(t, "", Text("NaT"))
	require.Equal(t, "obra", Text(" obra "))
}
