package service

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/config"
	"github.com/caioln/sfa-service/internal/ingest"
	"github.com/caioln/sfa-service/internal/model"
)

type memContractStore struct {
	contracts map[int64]model.Contract
	values    map[int64]model.ContractValues
	dates     map[int64]model.ContractDates
	processes map[int64]model.AdministrativeProcess
	nextID    int64
	familyErr error
}

func newMemContractStore() *memContractStore {
	return &memContractStore{
		contracts: map[int64]model.Contract{},
		values:    map[int64]model.ContractValues{},
		dates:     map[int64]model.ContractDates{},
		processes: map[int64]model.AdministrativeProcess{},
	}
}

func (m *memContractStore) CreateContractFamily(ctx context.Context, contract model.Contract, children func(int64) (*model.ContractValues, *model.ContractDates, *model.AdministrativeProcess)) (int64, error) {
	if m.familyErr != nil {
		return 0, m.familyErr
	}
	m.nextID++
	contract.ID = m.nextID
	m.contracts[contract.ID] = contract

	values, dates, process := children(contract.ID)
	if values != nil {
		values.ID = contract.ID
		m.values[values.ID] = *values
	}
	if dates != nil {
		dates.ID = contract.ID
		m.dates[dates.ID] = *dates
	}
	if process != nil {
		process.ID = contract.ID
		m.processes[process.ID] = *process
	}
	return contract.ID, nil
}

func (m *memContractStore) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	contract, ok := m.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (m *memContractStore) sortedContractIDs() []int64 {
	ids := make([]int64, 0, len(m.contracts))
	for id := range m.contracts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memContractStore) ListContracts(ctx context.Context, f model.ContractFilter, offset, limit int) ([]model.Contract, error) {
	var result []model.Contract
	for _, id := range m.sortedContractIDs() {
		result = append(result, m.contracts[id])
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *memContractStore) CountContracts(ctx context.Context, f model.ContractFilter) (int64, error) {
	return int64(len(m.contracts)), nil
}

func (m *memContractStore) UpdateContract(ctx context.Context, contract model.Contract) error {
	if _, ok := m.contracts[contract.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.contracts[contract.ID] = contract
	return nil
}

func (m *memContractStore) DeleteContract(ctx context.Context, id int64) error {
	if _, ok := m.contracts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.contracts, id)
	return nil
}

func (m *memContractStore) GetContractValues(ctx context.Context, id int64) (*model.ContractValues, error) {
	values, ok := m.values[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &values, nil
}

func (m *memContractStore) ListContractValues(ctx context.Context, f model.ContractValuesFilter, offset, limit int) ([]model.ContractValues, error) {
	var result []model.ContractValues
	for _, values := range m.values {
		if f.ContractID != nil && values.ContractID != *f.ContractID {
			continue
		}
		result = append(result, values)
	}
	return result, nil
}

func (m *memContractStore) CountContractValues(ctx context.Context, f model.ContractValuesFilter) (int64, error) {
	result, _ := m.ListContractValues(ctx, f, 0, 0)
	return int64(len(result)), nil
}

func (m *memContractStore) UpdateContractValues(ctx context.Context, values model.ContractValues) error {
	if _, ok := m.values[values.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.values[values.ID] = values
	return nil
}

func (m *memContractStore) DeleteContractValues(ctx context.Context, id int64) error {
	if _, ok := m.values[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.values, id)
	return nil
}

func (m *memContractStore) GetContractDates(ctx context.Context, id int64) (*model.ContractDates, error) {
	dates, ok := m.dates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &dates, nil
}

func (m *memContractStore) ListContractDates(ctx context.Context, f model.ContractDatesFilter, offset, limit int) ([]model.ContractDates, error) {
	var result []model.ContractDates
	for _, dates := range m.dates {
		if f.ContractID != nil && dates.ContractID != *f.ContractID {
			continue
		}
		result = append(result, dates)
	}
	return result, nil
}

func (m *memContractStore) CountContractDates(ctx context.Context, f model.ContractDatesFilter) (int64, error) {
	result, _ := m.ListContractDates(ctx, f, 0, 0)
	return int64(len(result)), nil
}

func (m *memContractStore) UpdateContractDates(ctx context.Context, dates model.ContractDates) error {
	if _, ok := m.dates[dates.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.dates[dates.ID] = dates
	return nil
}

func (m *memContractStore) DeleteContractDates(ctx context.Context, id int64) error {
	if _, ok := m.dates[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.dates, id)
	return nil
}

type fakePDF struct{}

func (fakePDF) Generate(doc model.ContractDocument) ([]byte, error) {
	return []byte("%PDF-fake " + doc.Contract.NumeroContrato), nil
}

func testConfig(continueOnRowError bool) *config.Config {
	cfg := &config.Config{}
	cfg.Import.ContinueOnRowError = continueOnRowError
	return cfg
}

func newContractService(store ContractStore, continueOnRowError bool) *ContractService {
	return NewContractService(store, fakePDF{}, testConfig(continueOnRowError), zerolog.Nop())
}

func seedContracts(store *memContractStore, n int) {
	for i := 0; i < n; i++ {
		store.nextID++
		store.contracts[store.nextID] = model.Contract{ID: store.nextID, NumeroContrato: "CT", Objeto: "obra"}
	}
}

func TestListContractsPagination(t *testing.T) {
	store := newMemContractStore()
	seedContracts(store, 25)
	svc := newContractService(store, false)

	contracts, info, err := svc.ListContracts(context.Background(), model.ContractFilter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, contracts, 10)
	require.Equal(t, int64(25), info.Total)
	require.Equal(t, 3, info.TotalPages)
	require.Equal(t, int64(1), contracts[0].ID)

	contracts, info, err = svc.ListContracts(context.Background(), model.ContractFilter{}, 3, 10)
	require.NoError(t, err)
	require.Len(t, contracts, 5)
	require.Equal(t, int64(21), contracts[0].ID)
	require.Equal(t, 3, info.TotalPages)
}

func TestListContractsEmptyStillHasOnePage(t *testing.T) {
	svc := newContractService(newMemContractStore(), false)

	contracts, info, err := svc.ListContracts(context.Background(), model.ContractFilter{}, 1, 10)
	require.NoError(t, err)
	require.Empty(t, contracts)
	require.Equal(t, int64(0), info.Total)
	require.Equal(t, 1, info.TotalPages)
}

func TestListContractsRejectsBadPaging(t *testing.T) {
	svc := newContractService(newMemContractStore(), false)

	_, _, err := svc.ListContracts(context.Background(), model.ContractFilter{}, -1, 10)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.ListContracts(context.Background(), model.ContractFilter{}, 1, 5000)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateContractAppliesOnlyPresentFields(t *testing.T) {
	store := newMemContractStore()
	tipo := "Obra"
	store.nextID = 1
	store.contracts[1] = model.Contract{
		ID:             1,
		NumeroContrato: "CT-001/2020",
		Contratante:    "Estado do Ceará",
		TipoObjeto:     &tipo,
		Objeto:         "Reforma",
	}
	svc := newContractService(store, false)

	novoObjeto := "Ampliação"
	contract, err := svc.UpdateContract(context.Background(), 1, model.ContractUpdate{Objeto: &novoObjeto})
	require.NoError(t, err)
	require.Equal(t, "Ampliação", contract.Objeto)
	require.Equal(t, "CT-001/2020", contract.NumeroContrato)
	require.Equal(t, "Estado do Ceará", contract.Contratante)
	require.NotNil(t, contract.TipoObjeto)
}

func TestUpdateContractNotFound(t *testing.T) {
	svc := newContractService(newMemContractStore(), false)

	objeto := "x"
	_, err := svc.UpdateContract(context.Background(), 99, model.ContractUpdate{Objeto: &objeto})
	require.ErrorIs(t, err, ErrNotFound)
}

func buildContractWorkbook(t *testing.T, rows [][]interface{}) *ingest.Source {
	t.Helper()
	file := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	source, err := ingest.ReadSource("contratos.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return source
}

func TestImportContractsPersistsFamiliesPerRow(t *testing.T) {
	source := buildContractWorkbook(t, [][]interface{}{
		{"Numero Contrato", "Contratante", "Valor Original", "Data de Assinatura", "Numero Processo"},
		{"CT-001/2020", "Estado do Ceará", "R$ 10.000,00", "15/03/2021", "PROC-1"},
		{"CT-002/2020", "Estado do Ceará", "nan", "nat", "PROC-2"},
	})

	store := newMemContractStore()
	svc := newContractService(store, false)

	report, err := svc.ImportContracts(context.Background(), []*ingest.Source{source})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	require.Equal(t, 2, report.Files[0].Imported)

	require.Len(t, store.contracts, 2)
	require.Len(t, store.values, 2)
	require.Len(t, store.dates, 2)
	require.Len(t, store.processes, 2)

	first := store.values[1]
	require.NotNil(t, first.ValorOriginal)
	require.InDelta(t, 10000.0, *first.ValorOriginal, 1e-9)

	second := store.values[2]
	require.Nil(t, second.ValorOriginal)
	require.Nil(t, store.dates[2].DataAssinatura)
}

func TestImportContractsAbortsOnMissingNumero(t *testing.T) {
	source := buildContractWorkbook(t, [][]interface{}{
		{"Numero Contrato", "Contratante"},
		{"CT-001/2020", "Estado do Ceará"},
		{"", "Estado do Ceará"},
	})

	store := newMemContractStore()
	svc := newContractService(store, false)

	_, err := svc.ImportContracts(context.Background(), []*ingest.Source{source})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "row 3")
	// A primeira linha permanece persistida: o lote não é atômico.
	require.Len(t, store.contracts, 1)
}

func TestImportContractsSkipPolicy(t *testing.T) {
	source := buildContractWorkbook(t, [][]interface{}{
		{"Numero Contrato", "Contratante"},
		{"CT-001/2020", "Estado do Ceará"},
		{"", "Estado do Ceará"},
		{"CT-003/2020", "Estado do Ceará"},
	})

	store := newMemContractStore()
	svc := newContractService(store, true)

	report, err := svc.ImportContracts(context.Background(), []*ingest.Source{source})
	require.NoError(t, err)
	require.Equal(t, 2, report.Files[0].Imported)
	require.Equal(t, 1, report.Files[0].Skipped)
	require.Len(t, store.contracts, 2)
}

func TestImportContractsEmptyBatch(t *testing.T) {
	svc := newContractService(newMemContractStore(), false)

	_, err := svc.ImportContracts(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyBatch)
}

func TestContractDocumentJoinsFamilies(t *testing.T) {
	store := newMemContractStore()
	store.nextID = 1
	store.contracts[1] = model.Contract{ID: 1, NumeroContrato: "CT-001/2020"}
	valor := 500.0
	store.values[1] = model.ContractValues{ID: 1, ContractID: 1, ValorOriginal: &valor}
	svc := newContractService(store, false)

	content, err := svc.ContractDocument(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, string(content), "CT-001/2020")

	_, err = svc.ContractDocument(context.Background(), 9)
	require.ErrorIs(t, err, ErrNotFound)
}
