package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tabelas filhas apagam junto com o pai. Sem esta cláusula um DELETE no
// contrato ou no convênio deixaria órfãos nas tabelas de valores, datas,
// processos e prestações de contas.
func TestMigrationsChildTablesCascadeOnParentDelete(t *testing.T) {
	children := map[string]string{
		"contract_values":          "REFERENCES contracts(id) ON DELETE CASCADE",
		"contract_dates":           "REFERENCES contracts(id) ON DELETE CASCADE",
		"administrative_processes": "REFERENCES contracts(id) ON DELETE CASCADE",
		"agreement_values":         "REFERENCES agreements(id) ON DELETE CASCADE",
		"agreement_dates":          "REFERENCES agreements(id) ON DELETE CASCADE",
		"accountability":           "REFERENCES agreements(id) ON DELETE CASCADE",
	}

	for table, clause := range children {
		stmt := createStatementFor(t, table)
		require.Contains(t, stmt, clause, "tabela %s deve apagar em cascata", table)
	}
}

func TestMigrationsEveryChildReferenceCascades(t *testing.T) {
	for _, stmt := range migrationStatements {
		for _, line := range strings.Split(stmt, "\n") {
			if strings.Contains(line, "REFERENCES") {
				require.Contains(t, line, "ON DELETE CASCADE", "referência sem cascata: %s", strings.TrimSpace(line))
			}
		}
	}
}

func createStatementFor(t *testing.T, table string) string {
	t.Helper()
	prefix := "CREATE TABLE IF NOT EXISTS " + table + " "
	for _, stmt := range migrationStatements {
		if strings.HasPrefix(stmt, prefix) {
			return stmt
		}
	}
	t.Fatalf("tabela %s não encontrada nas migrações", table)
	return ""
}
