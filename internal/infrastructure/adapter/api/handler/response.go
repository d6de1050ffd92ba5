package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/error"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/dto"
)

// StatusCode maps a domain error to its HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInsufficientFunds), errors.Is(err, domainerr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal details never reach the client;
// the use case has already logged them.
func respondError(c *gin.Context, err error) {
	status := StatusCode(err)

	if detail, ok := domainerr.AsInsufficientFunds(err); ok {
		c.JSON(status, dto.Failure("insufficient funds", dto.InsufficientFundsData{
			Available: detail.Available,
			Requested: detail.Requested,
		}))
		return
	}

	var opErr *domainerr.CoinOperationError
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		msg = domainerr.ErrInternal.Error()
	case errors.As(err, &opErr):
		msg = opErr.Err.Error()
	}
	c.JSON(status, dto.Failure(msg, nil))
}

// respondBindError reports a malformed or incomplete request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Failure(domainerr.ErrInvalidArgument.Error()+": "+err.Error(), nil))
}
