package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/caioln/sfa-service/internal/config"
	"github.com/caioln/sfa-service/internal/ingest"
	"github.com/caioln/sfa-service/internal/model"
)

// ContractStore é o recorte de persistência que o serviço de contratos usa.
type ContractStore interface {
	CreateContractFamily(ctx context.Context, contract model.Contract, children func(contractID int64) (*model.ContractValues, *model.ContractDates, *model.AdministrativeProcess)) (int64, error)
	GetContract(ctx context.Context, id int64) (*model.Contract, error)
	ListContracts(ctx context.Context, f model.ContractFilter, offset, limit int) ([]model.Contract, error)
	CountContracts(ctx context.Context, f model.ContractFilter) (int64, error)
	UpdateContract(ctx context.Context, contract model.Contract) error
	DeleteContract(ctx context.Context, id int64) error

	GetContractValues(ctx context.Context, id int64) (*model.ContractValues, error)
	ListContractValues(ctx context.Context, f model.ContractValuesFilter, offset, limit int) ([]model.ContractValues, error)
	CountContractValues(ctx context.Context, f model.ContractValuesFilter) (int64, error)
	UpdateContractValues(ctx context.Context, values model.ContractValues) error
	DeleteContractValues(ctx context.Context, id int64) error

	GetContractDates(ctx context.Context, id int64) (*model.ContractDates, error)
	ListContractDates(ctx context.Context, f model.ContractDatesFilter, offset, limit int) ([]model.ContractDates, error)
	CountContractDates(ctx context.Context, f model.ContractDatesFilter) (int64, error)
	UpdateContractDates(ctx context.Context, dates model.ContractDates) error
	DeleteContractDates(ctx context.Context, id int64) error
}

// PDFGenerator monta a ficha resumida de um contrato.
type PDFGenerator interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

type ContractService struct {
	store  ContractStore
	pdf    PDFGenerator
	log    zerolog.Logger
	policy ingest.Policy
}

func NewContractService(store ContractStore, pdf PDFGenerator, cfg *config.Config, log zerolog.Logger) *ContractService {
	return &ContractService{
		store:  store,
		pdf:    pdf,
		log:    log,
		policy: ingest.Policy{ContinueOnRowError: cfg.Import.ContinueOnRowError},
	}
}

// ImportContracts ingere uma leva de planilhas de contratos. Cada linha vira
// um contrato com suas famílias filhas em uma transação própria.
func (s *ContractService) ImportContracts(ctx context.Context, sources []*ingest.Source) (*ingest.BatchReport, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyBatch
	}

	pipeline := ingest.NewPipeline(s.log, s.policy)
	return pipeline.Run(ctx, sources, func(ctx context.Context, row ingest.Row) error {
		contract := ingest.ContractFromRow(row)
		if contract.NumeroContrato == "" {
			return fmt.Errorf("%w: numero_contrato ausente", ErrInvalidInput)
		}
		_, err := s.store.CreateContractFamily(ctx, contract, func(contractID int64) (*model.ContractValues, *model.ContractDates, *model.AdministrativeProcess) {
			return ingest.ContractValuesFromRow(row, contractID),
				ingest.ContractDatesFromRow(row, contractID),
				ingest.ProcessFromRow(row, contractID)
		})
		return err
	})
}

func (s *ContractService) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	contract, err := s.store.GetContract(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, f model.ContractFilter, page, limit int) ([]model.Contract, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	contracts, err := s.store.ListContracts(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountContracts(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return contracts, newPageInfo(page, limit, total), nil
}

func (s *ContractService) CountContracts(ctx context.Context, f model.ContractFilter) (int64, error) {
	return s.store.CountContracts(ctx, f)
}

// UpdateContract aplica somente os campos presentes e devolve o registro
// resultante.
func (s *ContractService) UpdateContract(ctx context.Context, id int64, update model.ContractUpdate) (*model.Contract, error) {
	contract, err := s.store.GetContract(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.NumeroContrato != nil {
		contract.NumeroContrato = *update.NumeroContrato
	}
	if update.CpfCnpj != nil {
		contract.CpfCnpj = *update.CpfCnpj
	}
	if update.Contratante != nil {
		contract.Contratante = *update.Contratante
	}
	if update.Contratado != nil {
		contract.Contratado = *update.Contratado
	}
	if update.TipoObjeto != nil {
		contract.TipoObjeto = update.TipoObjeto
	}
	if update.Objeto != nil {
		contract.Objeto = *update.Objeto
	}
	if contract.NumeroContrato == "" {
		return nil, fmt.Errorf("%w: numero_contrato não pode ficar vazio", ErrInvalidInput)
	}
	if err := s.store.UpdateContract(ctx, *contract); err != nil {
		return nil, mapStoreError(err)
	}
	return contract, nil
}

func (s *ContractService) DeleteContract(ctx context.Context, id int64) error {
	if err := s.store.DeleteContract(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (s *ContractService) GetContractValues(ctx context.Context, id int64) (*model.ContractValues, error) {
	values, err := s.store.GetContractValues(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return values, nil
}

func (s *ContractService) ListContractValues(ctx context.Context, f model.ContractValuesFilter, page, limit int) ([]model.ContractValues, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	values, err := s.store.ListContractValues(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountContractValues(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return values, newPageInfo(page, limit, total), nil
}

func (s *ContractService) UpdateContractValues(ctx context.Context, id int64, update model.ContractValuesUpdate) (*model.ContractValues, error) {
	values, err := s.store.GetContractValues(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.ValorOriginal != nil {
		values.ValorOriginal = update.ValorOriginal
	}
	if update.ValorAditivo != nil {
		values.ValorAditivo = update.ValorAditivo
	}
	if update.ValorAtualizado != nil {
		values.ValorAtualizado = update.ValorAtualizado
	}
	if update.ValorEmpenhado != nil {
		values.ValorEmpenhado = update.ValorEmpenhado
	}
	if update.ValorPago != nil {
		values.ValorPago = update.ValorPago
	}
	if err := s.store.UpdateContractValues(ctx, *values); err != nil {
		return nil, mapStoreError(err)
	}
	return values, nil
}

func (s *ContractService) DeleteContractValues(ctx context.Context, id int64) error {
	if err := s.store.DeleteContractValues(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (s *ContractService) GetContractDates(ctx context.Context, id int64) (*model.ContractDates, error) {
	dates, err := s.store.GetContractDates(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return dates, nil
}

func (s *ContractService) ListContractDates(ctx context.Context, f model.ContractDatesFilter, page, limit int) ([]model.ContractDates, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	dates, err := s.store.ListContractDates(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountContractDates(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return dates, newPageInfo(page, limit, total), nil
}

func (s *ContractService) CountContractDates(ctx context.Context, f model.ContractDatesFilter) (int64, error) {
	return s.store.CountContractDates(ctx, f)
}

func (s *ContractService) UpdateContractDates(ctx context.Context, id int64, update model.ContractDatesUpdate) (*model.ContractDates, error) {
	dates, err := s.store.GetContractDates(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.DataAssinatura != nil {
		dates.DataAssinatura = update.DataAssinatura
	}
	if update.DataTerminoOriginal != nil {
		dates.DataTerminoOriginal = update.DataTerminoOriginal
	}
	if update.DataTerminoAposAditivo != nil {
		dates.DataTerminoAposAditivo = update.DataTerminoAposAditivo
	}
	if update.DataRescisao != nil {
		dates.DataRescisao = update.DataRescisao
	}
	if update.DataPublicacaoDOE != nil {
		dates.DataPublicacaoDOE = update.DataPublicacaoDOE
	}
	if err := s.store.UpdateContractDates(ctx, *dates); err != nil {
		return nil, mapStoreError(err)
	}
	return dates, nil
}

func (s *ContractService) DeleteContractDates(ctx context.Context, id int64) error {
	if err := s.store.DeleteContractDates(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// ContractDocument junta o contrato com valores e datas (quando existirem)
// e rende a ficha em PDF.
func (s *ContractService) ContractDocument(ctx context.Context, id int64) ([]byte, error) {
	contract, err := s.store.GetContract(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	doc := model.ContractDocument{Contract: *contract}

	values, err := s.store.ListContractValues(ctx, model.ContractValuesFilter{ContractID: &id}, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		doc.Values = &values[0]
	}

	dates, err := s.store.ListContractDates(ctx, model.ContractDatesFilter{ContractID: &id}, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(dates) > 0 {
		doc.Dates = &dates[0]
	}

	return s.pdf.Generate(doc)
}

func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
