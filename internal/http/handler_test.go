package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/auth"
	"github.com/caioln/sfa-service/internal/config"
	"github.com/caioln/sfa-service/internal/excel"
	"github.com/caioln/sfa-service/internal/http/middleware"
	"github.com/caioln/sfa-service/internal/model"
	"github.com/caioln/sfa-service/internal/pdf"
	"github.com/caioln/sfa-service/internal/service"
)

const testSecret = "segredo-de-teste"

// fakeContractStore cobre só os métodos exercitados pelas rotas testadas.
type fakeContractStore struct {
	service.ContractStore
	contracts map[int64]model.Contract
	families  int
}

func (f *fakeContractStore) CreateContractFamily(ctx context.Context, contract model.Contract, children func(int64) (*model.ContractValues, *model.ContractDates, *model.AdministrativeProcess)) (int64, error) {
	f.families++
	id := int64(f.families)
	children(id)
	contract.ID = id
	f.contracts[id] = contract
	return id, nil
}

func (f *fakeContractStore) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	contract, ok := f.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (f *fakeContractStore) ListContracts(ctx context.Context, filter model.ContractFilter, offset, limit int) ([]model.Contract, error) {
	var result []model.Contract
	for id := int64(1); id <= int64(len(f.contracts)); id++ {
		if contract, ok := f.contracts[id]; ok {
			result = append(result, contract)
		}
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

func (f *fakeContractStore) CountContracts(ctx context.Context, filter model.ContractFilter) (int64, error) {
	return int64(len(f.contracts)), nil
}

func (f *fakeContractStore) UpdateContract(ctx context.Context, contract model.Contract) error {
	if _, ok := f.contracts[contract.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.contracts[contract.ID] = contract
	return nil
}

func (f *fakeContractStore) ListContractValues(ctx context.Context, filter model.ContractValuesFilter, offset, limit int) ([]model.ContractValues, error) {
	return nil, nil
}

func (f *fakeContractStore) ListContractDates(ctx context.Context, filter model.ContractDatesFilter, offset, limit int) ([]model.ContractDates, error) {
	return nil, nil
}

type fakeAgreementStore struct {
	service.AgreementStore
}

type fakeProcessStore struct {
	service.ProcessStore
}

type fakeAccountabilityStore struct {
	service.AccountabilityStore
}

type fakeStats struct {
	comparison []model.YearValueComparison
	paid       []model.YearPaid
	counts     []model.StatusCount
}

func (f fakeStats) AgreementValueComparisonByYear(ctx context.Context) ([]model.YearValueComparison, error) {
	return f.comparison, nil
}

func (f fakeStats) AgreementPaidByYear(ctx context.Context) ([]model.YearPaid, error) {
	return f.paid, nil
}

func (f fakeStats) AccountabilityStatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	return f.counts, nil
}

func testRouter(t *testing.T, contractStore service.ContractStore, stats fakeStats) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Environment: "development"}
	cfg.HTTP.AllowedOrigins = []string{"*"}
	cfg.Auth.AccessSecret = testSecret
	cfg.Import.MaxUploadMB = 8

	log := zerolog.Nop()
	contracts := service.NewContractService(contractStore, pdf.NewGenerator(), cfg, log)
	processes := service.NewProcessService(&fakeProcessStore{})
	agreements := service.NewAgreementService(&fakeAgreementStore{}, stats, excel.NewGenerator(), cfg, log)
	accountability := service.NewAccountabilityService(&fakeAccountabilityStore{}, stats)

	handler := NewHandler(contracts, processes, agreements, accountability, log)
	authMiddleware := middleware.Auth(auth.NewParser(testSecret))
	return NewRouter(handler, authMiddleware, cfg)
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "tester",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestGetContract(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{
		1: {ID: 1, NumeroContrato: "CT-001/2020", Objeto: "Reforma"},
	}}
	router := testRouter(t, store, fakeStats{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contracts/1", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var contract model.Contract
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &contract))
	require.Equal(t, "CT-001/2020", contract.NumeroContrato)
}

func TestGetContractNotFound(t *testing.T) {
	router := testRouter(t, &fakeContractStore{contracts: map[int64]model.Contract{}}, fakeStats{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contracts/99", nil))
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetContractBadID(t *testing.T) {
	router := testRouter(t, &fakeContractStore{contracts: map[int64]model.Contract{}}, fakeStats{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contracts/abc", nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListContractsEnvelope(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{}}
	for i := int64(1); i <= 25; i++ {
		store.contracts[i] = model.Contract{ID: i, NumeroContrato: "CT"}
	}
	router := testRouter(t, store, fakeStats{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contracts?page=2&limit=10", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data       []model.Contract `json:"data"`
		Page       int              `json:"page"`
		Limit      int              `json:"limit"`
		Total      int64            `json:"total"`
		TotalPages int              `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 10)
	require.Equal(t, 2, body.Page)
	require.Equal(t, int64(25), body.Total)
	require.Equal(t, 3, body.TotalPages)
	require.Equal(t, int64(11), body.Data[0].ID)
}

func TestUpdateContractRequiresToken(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{
		1: {ID: 1, NumeroContrato: "CT-001/2020"},
	}}
	router := testRouter(t, store, fakeStats{})

	payload := bytes.NewBufferString(`{"objeto":"Ampliação"}`)
	request := httptest.NewRequest(http.MethodPut, "/contracts/1", payload)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestUpdateContractWithToken(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{
		1: {ID: 1, NumeroContrato: "CT-001/2020", Objeto: "Reforma"},
	}}
	router := testRouter(t, store, fakeStats{})

	payload := bytes.NewBufferString(`{"objeto":"Ampliação"}`)
	request := httptest.NewRequest(http.MethodPut, "/contracts/1", payload)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", bearerToken(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var contract model.Contract
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &contract))
	require.Equal(t, "Ampliação", contract.Objeto)
	require.Equal(t, "CT-001/2020", contract.NumeroContrato)
	require.Equal(t, "Ampliação", store.contracts[1].Objeto)
}

func buildImportRequest(t *testing.T, path string, rows [][]interface{}) *http.Request {
	t.Helper()
	file := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow("Sheet1", cell, &row))
	}
	workbook, err := file.WriteToBuffer()
	require.NoError(t, err)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "planilha.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, path, &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set("Authorization", bearerToken(t))
	return request
}

func TestImportContractsEndpoint(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{}}
	router := testRouter(t, store, fakeStats{})

	request := buildImportRequest(t, "/contracts/import", [][]interface{}{
		{"Numero Contrato", "Contratante", "Valor Original"},
		{"CT-001/2020", "Estado do Ceará", "R$ 10.000,00"},
		{"CT-002/2020", "Estado do Ceará", "nan"},
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var report struct {
		BatchID string `json:"batch_id"`
		Files   []struct {
			File     string `json:"file"`
			Imported int    `json:"imported"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &report))
	require.NotEmpty(t, report.BatchID)
	require.Len(t, report.Files, 1)
	require.Equal(t, 2, report.Files[0].Imported)
	require.Equal(t, 2, store.families)
}

func TestImportContractsRejectsMissingNumero(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{}}
	router := testRouter(t, store, fakeStats{})

	request := buildImportRequest(t, "/contracts/import", [][]interface{}{
		{"Numero Contrato", "Contratante"},
		{"", "Estado do Ceará"},
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	require.Contains(t, recorder.Body.String(), "row 2")
}

func TestValueComparisonChartJSONFormat(t *testing.T) {
	stats := fakeStats{comparison: []model.YearValueComparison{
		{Ano: 2020, ValorOriginal: 100, ValorAtualizado: 130},
	}}
	router := testRouter(t, &fakeContractStore{contracts: map[int64]model.Contract{}}, stats)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/charts/agreements/value-comparison?format=json", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []model.YearValueComparison `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, 2020, body.Data[0].Ano)
}

func TestValueComparisonChartWorkbook(t *testing.T) {
	stats := fakeStats{comparison: []model.YearValueComparison{
		{Ano: 2020, ValorOriginal: 100, ValorAtualizado: 130},
	}}
	router := testRouter(t, &fakeContractStore{contracts: map[int64]model.Contract{}}, stats)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/charts/agreements/value-comparison", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, xlsxContentType, recorder.Header().Get("Content-Type"))

	workbook, err := excelize.OpenReader(bytes.NewReader(recorder.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()
	require.Equal(t, []string{"Comparativo"}, workbook.GetSheetList())
}

func TestAccountabilityPerStatus(t *testing.T) {
	stats := fakeStats{counts: []model.StatusCount{
		{Status: "Aprovada", Quantidade: 7},
		{Status: "Pendente", Quantidade: 3},
	}}
	router := testRouter(t, &fakeContractStore{contracts: map[int64]model.Contract{}}, stats)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stats/accountability/per-status", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []model.StatusCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, "Aprovada", body.Data[0].Status)
}

func TestContractPDFEndpoint(t *testing.T) {
	store := &fakeContractStore{contracts: map[int64]model.Contract{
		1: {ID: 1, NumeroContrato: "CT-001/2020"},
	}}
	router := testRouter(t, store, fakeStats{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contracts/1/pdf", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	require.Equal(t, "%PDF", recorder.Body.String()[:4])
}
