package dto

import "encoding/json"

// Amounts are decoded as json.Number so that both 20 and "20" are accepted and
// fractional or exponent forms reach the domain validation untouched.

// CoinMutationRequest is the body of add, deduct and set. userId and targetId are synonyms.
type CoinMutationRequest struct {
	UserID   string      `json:"userId"`
	TargetID string      `json:"targetId"`
	Amount   json.Number `json:"amount" binding:"required"`
	Reason   string      `json:"reason"`
}

// Target returns whichever of targetId and userId was sent
func (r CoinMutationRequest) Target() string {
	if r.TargetID != "" {
		return r.TargetID
	}
	return r.UserID
}

// TransferRequest is the body of POST /coins/transfer
type TransferRequest struct {
	RecipientID string      `json:"recipientId" binding:"required"`
	Amount      json.Number `json:"amount" binding:"required"`
	Message     string      `json:"message"`
}

// ChargeFeatureRequest is the body of POST /coins/charge
type ChargeFeatureRequest struct {
	Feature string `json:"feature" binding:"required"`
}

// HistoryQuery is the query string of the history endpoint
type HistoryQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
