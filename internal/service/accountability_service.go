package service

import (
	"context"
	"fmt"

	"github.com/caioln/sfa-service/internal/model"
)

// AccountabilityStore é o recorte de persistência das prestações de contas.
type AccountabilityStore interface {
	CreateAccountability(ctx context.Context, accountability *model.Accountability) error
	GetAccountability(ctx context.Context, id int64) (*model.Accountability, error)
	ListAccountabilities(ctx context.Context, f model.AccountabilityFilter, offset, limit int) ([]model.Accountability, error)
	CountAccountabilities(ctx context.Context, f model.AccountabilityFilter) (int64, error)
	UpdateAccountability(ctx context.Context, accountability model.Accountability) error
	DeleteAccountability(ctx context.Context, id int64) error
}

// AccountabilityStatsStore fornece a contagem de prestações por situação.
type AccountabilityStatsStore interface {
	AccountabilityStatusCounts(ctx context.Context) ([]model.StatusCount, error)
}

type AccountabilityService struct {
	store AccountabilityStore
	stats AccountabilityStatsStore
}

func NewAccountabilityService(store AccountabilityStore, stats AccountabilityStatsStore) *AccountabilityService {
	return &AccountabilityService{store: store, stats: stats}
}

func (s *AccountabilityService) CreateAccountability(ctx context.Context, accountability *model.Accountability) error {
	if accountability.AgreementID == 0 {
		return fmt.Errorf("%w: agreement_id é obrigatório", ErrInvalidInput)
	}
	return s.store.CreateAccountability(ctx, accountability)
}

func (s *AccountabilityService) GetAccountability(ctx context.Context, id int64) (*model.Accountability, error) {
	accountability, err := s.store.GetAccountability(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return accountability, nil
}

func (s *AccountabilityService) ListAccountabilities(ctx context.Context, f model.AccountabilityFilter, page, limit int) ([]model.Accountability, PageInfo, error) {
	page, limit, err := normalizePage(page, limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	accountabilities, err := s.store.ListAccountabilities(ctx, f, offsetOf(page, limit), limit)
	if err != nil {
		return nil, PageInfo{}, err
	}
	total, err := s.store.CountAccountabilities(ctx, f)
	if err != nil {
		return nil, PageInfo{}, err
	}
	return accountabilities, newPageInfo(page, limit, total), nil
}

func (s *AccountabilityService) UpdateAccountability(ctx context.Context, id int64, update model.AccountabilityUpdate) (*model.Accountability, error) {
	accountability, err := s.store.GetAccountability(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if update.Status != nil {
		accountability.Status = *update.Status
	}
	if update.Justificativa != nil {
		accountability.Justificativa = *update.Justificativa
	}
	if update.TipoPrestacao != nil {
		accountability.TipoPrestacao = *update.TipoPrestacao
	}
	if update.Notas != nil {
		accountability.Notas = *update.Notas
	}
	if err := s.store.UpdateAccountability(ctx, *accountability); err != nil {
		return nil, mapStoreError(err)
	}
	return accountability, nil
}

func (s *AccountabilityService) DeleteAccountability(ctx context.Context, id int64) error {
	if err := s.store.DeleteAccountability(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// StatusCounts devolve quantas prestações existem em cada situação.
func (s *AccountabilityService) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	return s.stats.AccountabilityStatusCounts(ctx)
}
