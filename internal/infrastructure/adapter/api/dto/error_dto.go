package dto

// Result values of the response envelope
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Response is the envelope of every API response. TotalCount is the size of the
// whole list for paged results and 0 otherwise.
type Response struct {
	Result     string `json:"result"`
	Msg        string `json:"msg"`
	Data       any    `json:"data"`
	TotalCount int64  `json:"totalCount"`
}

// Success wraps data in a success envelope
func Success(msg string, data any) Response {
	return Response{Result: ResultSuccess, Msg: msg, Data: data}
}

// SuccessPage wraps one page of a list together with the total count
func SuccessPage(msg string, data any, totalCount int64) Response {
	return Response{Result: ResultSuccess, Msg: msg, Data: data, TotalCount: totalCount}
}

// Failure builds an error envelope
func Failure(msg string, data any) Response {
	return Response{Result: ResultError, Msg: msg, Data: data}
}

// InsufficientFundsData is the data of an InsufficientFunds error response
type InsufficientFundsData struct {
	Available int64 `json:"available"`
	Requested int64 `json:"requested"`
}
