package service

import (
	"context"
	"fmt"

	"github.com/caioln/sfa-service/internal/model"
)

// ProcessStore é o recorte de persistência dos processos administrativos.
type ProcessStore interface {
	CreateProcess(ctx context.Context, process *model.AdministrativeProcess) error
	GetProcess(ctx context.Context, id int64) (*model.AdministrativeProcess, error)
	ListProcesses(ctx context.Context, f model.ProcessFilter, offset, limit int) ([]model.AdministrativeProcess, error)
	CountProcesses(ctx context.Context, f model.ProcessFilter) (int64, error)
	UpdateProcess(ctx context.Context, process model.AdministrativeProcess) error
	DeleteProcess(ctx context.Context, id int64) error
}

type ProcessService struct {
	store ProcessStore
}

func NewProcessService(store ProcessStore) *ProcessService {
	return &ProcessService{store: store}
}

func (s *ProcessService) CreateProcess(ctx context.Context, process *model.AdministrativeProcess) error {
	if process.ContractID == 0 {
		return fmt.Errorf("%w: contract_id é obrigatório", ErrInvalidInput)
	}
	return s.store.CreateProcess(ctx, process)
}

func (s *ProcessService) GetProcess(ctx context.Context, id int64) (*model.AdministrativeProcess, error) {
	process, err := s.store.GetProcess(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return process, nil
}

func (s *ProcessService) ListProcesses(ctx context.Context, f model.ProcessFilter, page, limit int) ([]model.AdministrativeProcess, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	processes, err := s.store.ListProcesses(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountProcesses(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return processes, newPageInfo(page, limit, total), nil
}

func (s *ProcessService) UpdateProcess(ctx context.Context, id int64, update model.ProcessUpdate) (*model.AdministrativeProcess, error) {
	process, err := s.store.GetProcess(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.NumeroProcesso != nil {
		process.NumeroProcesso = *update.NumeroProcesso
	}
	if update.ModalidadeLicitacao != nil {
		process.ModalidadeLicitacao = *update.ModalidadeLicitacao
	}
	if update.Justificativa != nil {
		process.Justificativa = *update.Justificativa
	}
	if update.SituacaoFisica != nil {
		process.SituacaoFisica = *update.SituacaoFisica
	}
	if err := s.store.UpdateProcess(ctx, *process); err != nil {
		return nil, mapStoreError(err)
	}
	return process, nil
}

func (s *ProcessService) DeleteProcess(ctx context.Context, id int64) error {
	if err := s.store.DeleteProcess(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}
