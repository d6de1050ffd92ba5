package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/dto"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/middleware"
)

// CoinHandler handles the coin mutation endpoints
type CoinHandler struct {
	coins usecase.CoinUseCase
}

// NewCoinHandler creates a new coin handler instance
func NewCoinHandler(coins usecase.CoinUseCase) *CoinHandler {
	return &CoinHandler{coins: coins}
}

// AddCoins handles POST /coins/add
func (h *CoinHandler) AddCoins(c *gin.Context) {
	var req dto.CoinMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.coins.AddCoins(c.Request.Context(), middleware.PrincipalFrom(c), usecase.AddCoinsRequest{
		TargetID: req.Target(),
		Amount:   req.Amount.String(),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("coins added", dto.AddCoinsResponse{
		BalanceChangeResponse: dto.NewBalanceChangeResponse(result.BalanceChange),
		Added:                 result.Added,
	}))
}

// DeductCoins handles POST /coins/deduct
func (h *CoinHandler) DeductCoins(c *gin.Context) {
	var req dto.CoinMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.coins.DeductCoins(c.Request.Context(), middleware.PrincipalFrom(c), usecase.DeductCoinsRequest{
		TargetID: req.Target(),
		Amount:   req.Amount.String(),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("coins deducted", dto.DeductCoinsResponse{
		BalanceChangeResponse: dto.NewBalanceChangeResponse(result.BalanceChange),
		Deducted:              result.Deducted,
	}))
}

// SetCoins handles POST /coins/set
func (h *CoinHandler) SetCoins(c *gin.Context) {
	var req dto.CoinMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.coins.SetCoins(c.Request.Context(), middleware.PrincipalFrom(c), usecase.SetCoinsRequest{
		TargetID: req.Target(),
		Amount:   req.Amount.String(),
		Reason:   req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("coins set", dto.NewBalanceChangeResponse(result.BalanceChange)))
}

// Transfer handles POST /coins/transfer
func (h *CoinHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.coins.Transfer(c.Request.Context(), middleware.PrincipalFrom(c), usecase.TransferRequest{
		RecipientID: req.RecipientID,
		Amount:      req.Amount.String(),
		Message:     req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("coins transferred", dto.NewTransferResponse(result)))
}

// ChargeFeature handles POST /coins/charge
func (h *CoinHandler) ChargeFeature(c *gin.Context) {
	var req dto.ChargeFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.coins.ChargeFeature(c.Request.Context(), middleware.PrincipalFrom(c), req.Feature)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("feature charged", dto.DeductCoinsResponse{
		BalanceChangeResponse: dto.NewBalanceChangeResponse(result.BalanceChange),
		Deducted:              result.Deducted,
	}))
}
