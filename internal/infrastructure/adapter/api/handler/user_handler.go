package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/usecase"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/dto"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/middleware"
)

// selfAlias may be used in place of the caller's own id in user paths
const selfAlias = "me"

// UserHandler handles the per-user read endpoints
type UserHandler struct {
	coins usecase.CoinUseCase
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(coins usecase.CoinUseCase) *UserHandler {
	return &UserHandler{coins: coins}
}

func targetParam(c *gin.Context) string {
	if id := c.Param("userId"); id != selfAlias {
		return id
	}
	return ""
}

// GetBalance handles GET /users/:userId/coins
func (h *UserHandler) GetBalance(c *gin.Context) {
	balance, err := h.coins.GetBalance(c.Request.Context(), middleware.PrincipalFrom(c), targetParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("balance retrieved", dto.NewBalanceResponse(balance)))
}

// GetHistory handles GET /users/:userId/coins/history
func (h *UserHandler) GetHistory(c *gin.Context) {
	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.coins.History(c.Request.Context(), middleware.PrincipalFrom(c), usecase.HistoryRequest{
		TargetID: targetParam(c),
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPage("history retrieved", dto.NewLedgerEntryResponses(page.Entries), page.TotalCount))
}
