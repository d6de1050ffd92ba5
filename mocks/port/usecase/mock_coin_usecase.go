package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
)

// MockCoinUseCase is a testify mock of usecase.CoinUseCase
type MockCoinUseCase struct {
	mock.Mock
}

func (m *MockCoinUseCase) GetBalance(ctx context.Context, principal entity.Principal, targetID string) (*entity.BalanceResponse, error) {
	args := m.Called(ctx, principal, targetID)
	result, _ := args.Get(0).(*entity.BalanceResponse)
	return result, args.Error(1)
}

func (m *MockCoinUseCase) AddCoins(ctx context.Context, principal entity.Principal, req usecase.AddCoinsRequest) (*entity.AddCoinsResult, error) {
	args := m.Called(ctx, principal, req)
	result, _ := args.Get(0).(*entity.AddCoinsResult)
	return result, args.Error(1)
}

func (m *MockCoinUseCase) DeductCoins(ctx context.Context, principal entity.Principal, req usecase.DeductCoinsRequest) (*entity.DeductCoinsResult, error) {
	args := m.Called(ctx, principal, req)
	result, _ := args.Get(0).(*entity.DeductCoinsResult)
	return result, args.Error(1)
}

func (m *MockCoinUseCase) SetCoins(ctx context.Context, principal entity.Principal, req usecase.SetCoinsRequest) (*entity.SetCoinsResult, error) {
	args := m.Called(ctx, principal, req)
	result, _ := args.Get(0).(*entity.SetCoinsResult)
	return result, args.Error(1)
}

func (m *MockCoinUseCase) Transfer(ctx context.Context, principal entity.Principal, req usecase.TransferRequest) (*entity.TransferResult, error) {
	args := m.Called(ctx, principal, req)
	result, _ := args.Get(0).(*entity.TransferResult)
	return result, args.Error(1)
}

func (m *MockCoinUseCase) ChargeFeature(ctx context.Context, principal entity.Principal, feature string) (*entity.DeductCoinsResult, error) {
	args := m.Called(ctx, principal, feature)
	result, _ := args.Get(0).(*entity.DeductCoinsResult)
	return result, args.Error(1)
}

func (m *MockCoinUseCase) History(ctx context.Context, principal entity.Principal, req usecase.HistoryRequest) (*entity.LedgerPage, error) {
	args := m.Called(ctx, principal, req)
	result, _ := args.Get(0).(*entity.LedgerPage)
	return result, args.Error(1)
}
