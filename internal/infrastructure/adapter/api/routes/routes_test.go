package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/entity"
	domainerr "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/handler"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/middleware"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/database"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/logger"
	timeprovider "github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/time"
	usecasemocks "github.com/kodirov8788/topish-digitalOcian-sub002/mocks/port/usecase"
)

type staticParser map[string]entity.Principal

func (p staticParser) ParsePrincipal(token string) (entity.Principal, error) {
	if principal, ok := p[token]; ok {
		return principal, nil
	}
	return entity.Principal{}, domainerr.ErrInvalidToken
}

type staticHealth struct{ err error }

func (h staticHealth) Health(context.Context) (database.PoolStats, error) {
	return database.PoolStats{OpenConnections: 1}, h.err
}

var (
	userA = uuid.MustParse("0b8f7c1e-7a53-4d6e-9a44-7f0c7f1f5a01")
	userB = uuid.MustParse("5d2c1f9a-2b3e-4c4d-8e5f-6a7b8c9d0e02")
)

type envelope struct {
	Result     string          `json:"result"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	TotalCount *int64          `json:"totalCount"`
}

func newTestRouter(t *testing.T, coins *usecasemocks.MockCoinUseCase, healthErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNoopLogger()
	router := gin.New()
	SetupMiddlewares(router, log, timeprovider.NewRealTimeProvider(), nil)
	SetupRoutes(router, Handlers{
		Coin:   handler.NewCoinHandler(coins),
		User:   handler.NewUserHandler(coins),
		Health: handler.NewHealthHandler(staticHealth{err: healthErr}, log),
	}, middleware.Auth(staticParser{
		"token-a":     {UserID: userA},
		"token-admin": {UserID: userB, ServerRoles: []string{entity.CapabilityAdmin}},
	}, log))
	return router
}

func serve(router *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestAuthentication(t *testing.T) {
	coins := new(usecasemocks.MockCoinUseCase)
	router := newTestRouter(t, coins, nil)

	t.Run("should reject a request without a token", func(t *testing.T) {
		rec, env := serve(router, http.MethodGet, "/api/v1/users/me/coins", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "error", env.Result)
	})

	t.Run("should reject an unknown token", func(t *testing.T) {
		rec, _ := serve(router, http.MethodPost, "/api/v1/coins/transfer", "forged", `{"recipientId":"x","amount":1}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should serve health without a token", func(t *testing.T) {
		rec, env := serve(router, http.MethodGet, "/api/v1/health", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Result)
	})

	coins.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealth_DatabaseDown(t *testing.T) {
	router := newTestRouter(t, new(usecasemocks.MockCoinUseCase), errors.New("connection refused"))

	rec, env := serve(router, http.MethodGet, "/api/v1/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", env.Result)
}

func TestGetBalance(t *testing.T) {
	t.Run("should resolve me to the caller", func(t *testing.T) {
		// Arrange
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("GetBalance", mock.Anything, entity.Principal{UserID: userA}, "").
			Return(&entity.BalanceResponse{UserID: userA, Coins: 42}, nil).Once()
		router := newTestRouter(t, coins, nil)

		// Act
		rec, env := serve(router, http.MethodGet, "/api/v1/users/me/coins", "token-a", "")

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Result)
		assert.JSONEq(t, `{"userId":"`+userA.String()+`","coins":42}`, string(env.Data))
		require.NotNil(t, env.TotalCount)
		assert.Zero(t, *env.TotalCount)
		coins.AssertExpectations(t)
	})

	t.Run("should map forbidden to 403", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("GetBalance", mock.Anything, mock.Anything, userB.String()).
			Return(nil, domainerr.NewCoinOperationError("get_balance", userA, userB, 0, domainerr.ErrForbidden)).Once()
		router := newTestRouter(t, coins, nil)

		rec, env := serve(router, http.MethodGet, "/api/v1/users/"+userB.String()+"/coins", "token-a", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden", env.Msg)
		require.NotNil(t, env.TotalCount)
		assert.Zero(t, *env.TotalCount)
	})
}

func TestTransferEndpoint(t *testing.T) {
	t.Run("should pass the request through and echo both balances", func(t *testing.T) {
		// Arrange
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("Transfer", mock.Anything, entity.Principal{UserID: userA}, usecase.TransferRequest{
			RecipientID: userB.String(),
			Amount:      "20",
			Message:     "thanks",
		}).Return(&entity.TransferResult{
			From:    entity.BalanceChange{UserID: userA, PreviousCoins: 50, CurrentCoins: 30},
			To:      entity.BalanceChange{UserID: userB, PreviousCoins: 10, CurrentCoins: 30},
			Amount:  20,
			Message: "thanks",
		}, nil).Once()
		router := newTestRouter(t, coins, nil)

		// Act
		rec, env := serve(router, http.MethodPost, "/api/v1/coins/transfer", "token-a",
			`{"recipientId":"`+userB.String()+`","amount":20,"message":"thanks"}`)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"from":{"userId":"`+userA.String()+`","previousCoins":50,"currentCoins":30},
			"to":{"userId":"`+userB.String()+`","previousCoins":10,"currentCoins":30},
			"amount":20,
			"message":"thanks"
		}`, string(env.Data))
		coins.AssertExpectations(t)
	})

	t.Run("should keep a fractional amount for domain validation", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("Transfer", mock.Anything, mock.Anything, mock.MatchedBy(func(req usecase.TransferRequest) bool {
			return req.Amount == "1.5"
		})).Return(nil, domainerr.ErrInvalidAmount).Once()
		router := newTestRouter(t, coins, nil)

		rec, _ := serve(router, http.MethodPost, "/api/v1/coins/transfer", "token-a",
			`{"recipientId":"`+userB.String()+`","amount":1.5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		coins.AssertExpectations(t)
	})

	t.Run("should reject a body without an amount", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		router := newTestRouter(t, coins, nil)

		rec, env := serve(router, http.MethodPost, "/api/v1/coins/transfer", "token-a", `{"recipientId":"`+userB.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", env.Result)
		coins.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report available and requested on insufficient funds", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("Transfer", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domainerr.NewCoinOperationError("transfer", userA, userB, 10,
				domainerr.NewInsufficientFundsError(userA, 5, 10))).Once()
		router := newTestRouter(t, coins, nil)

		rec, env := serve(router, http.MethodPost, "/api/v1/coins/transfer", "token-a",
			`{"recipientId":"`+userB.String()+`","amount":"10"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "insufficient funds", env.Msg)
		assert.JSONEq(t, `{"available":5,"requested":10}`, string(env.Data))
	})

	t.Run("should map a missing recipient to 404", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("Transfer", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domainerr.ErrUserNotFound).Once()
		router := newTestRouter(t, coins, nil)

		rec, _ := serve(router, http.MethodPost, "/api/v1/coins/transfer", "token-a",
			`{"recipientId":"`+uuid.NewString()+`","amount":10}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should hide internal details", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("Transfer", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("pq: relation users does not exist")).Once()
		router := newTestRouter(t, coins, nil)

		rec, env := serve(router, http.MethodPost, "/api/v1/coins/transfer", "token-a",
			`{"recipientId":"`+userB.String()+`","amount":10}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", env.Msg)
	})
}

func TestMutationEndpoints(t *testing.T) {
	admin := entity.Principal{UserID: userB, ServerRoles: []string{entity.CapabilityAdmin}}

	t.Run("should accept userId as the add target", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("AddCoins", mock.Anything, admin, usecase.AddCoinsRequest{TargetID: userA.String(), Amount: "100", Reason: "promo"}).
			Return(&entity.AddCoinsResult{
				BalanceChange: entity.BalanceChange{UserID: userA, PreviousCoins: 10, CurrentCoins: 110},
				Added:         100,
			}, nil).Once()
		router := newTestRouter(t, coins, nil)

		rec, env := serve(router, http.MethodPost, "/api/v1/coins/add", "token-admin",
			`{"userId":"`+userA.String()+`","amount":100,"reason":"promo"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"userId":"`+userA.String()+`","previousCoins":10,"currentCoins":110,"added":100}`, string(env.Data))
		coins.AssertExpectations(t)
	})

	t.Run("should map an overflowing credit to 400", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("AddCoins", mock.Anything, admin, mock.Anything).
			Return(nil, domainerr.NewCoinOperationError("add_coins", userB, userA, 1, domainerr.ErrBalanceOutOfRange)).Once()
		router := newTestRouter(t, coins, nil)

		rec, env := serve(router, http.MethodPost, "/api/v1/coins/add", "token-admin",
			`{"userId":"`+userA.String()+`","amount":"9223372036854775807"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.ErrBalanceOutOfRange.Error(), env.Msg)
	})

	t.Run("should deduct from the caller when no target is sent", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("DeductCoins", mock.Anything, entity.Principal{UserID: userA}, usecase.DeductCoinsRequest{Amount: "5"}).
			Return(&entity.DeductCoinsResult{
				BalanceChange: entity.BalanceChange{UserID: userA, PreviousCoins: 50, CurrentCoins: 45},
				Deducted:      5,
			}, nil).Once()
		router := newTestRouter(t, coins, nil)

		rec, _ := serve(router, http.MethodPost, "/api/v1/coins/deduct", "token-a", `{"amount":5}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		coins.AssertExpectations(t)
	})

	t.Run("should map a non-admin set to 403", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("SetCoins", mock.Anything, mock.Anything, mock.Anything).Return(nil, domainerr.ErrAdminRequired).Once()
		router := newTestRouter(t, coins, nil)

		rec, _ := serve(router, http.MethodPost, "/api/v1/coins/set", "token-a",
			`{"targetId":"`+userA.String()+`","amount":0}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should charge a feature for the caller", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("ChargeFeature", mock.Anything, entity.Principal{UserID: userA}, "company").
			Return(&entity.DeductCoinsResult{
				BalanceChange: entity.BalanceChange{UserID: userA, PreviousCoins: 50, CurrentCoins: 45},
				Deducted:      5,
			}, nil).Once()
		router := newTestRouter(t, coins, nil)

		rec, _ := serve(router, http.MethodPost, "/api/v1/coins/charge", "token-a", `{"feature":"company"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		coins.AssertExpectations(t)
	})
}

func TestHistoryEndpoint(t *testing.T) {
	t.Run("should return the page with a total count", func(t *testing.T) {
		// Arrange
		at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		entry := entity.NewLedgerEntry(entity.LedgerKindDeduct, userA, userA, 50, 45, "feature:company", at)
		coins := new(usecasemocks.MockCoinUseCase)
		coins.On("History", mock.Anything, entity.Principal{UserID: userA}, usecase.HistoryRequest{Limit: 1, Offset: 2}).
			Return(&entity.LedgerPage{Entries: []*entity.CoinLedgerEntry{entry}, TotalCount: 3, Limit: 1, Offset: 2}, nil).Once()
		router := newTestRouter(t, coins, nil)

		// Act
		rec, env := serve(router, http.MethodGet, "/api/v1/users/me/coins/history?limit=1&offset=2", "token-a", "")

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, env.TotalCount)
		assert.Equal(t, int64(3), *env.TotalCount)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "deduct", rows[0]["kind"])
		assert.EqualValues(t, -5, rows[0]["delta"])
		coins.AssertExpectations(t)
	})

	t.Run("should reject a non-numeric limit", func(t *testing.T) {
		coins := new(usecasemocks.MockCoinUseCase)
		router := newTestRouter(t, coins, nil)

		rec, _ := serve(router, http.MethodGet, "/api/v1/users/me/coins/history?limit=ten", "token-a", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
