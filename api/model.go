package api

import (
	"errors"

	appErrors "github.com/Egor603/curswork1/errors"
)

// RESPONSES:

type RatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type ConvertResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

type InvestmentResponse struct {
	Month string  `json:"month"`
	Limit int     `json:"limit"`
	Total float64 `json:"total"`
}

type CacheClearedResponse struct {
	Message string `json:"message"`
}

func httpStatusFromError(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrNotFound), errors.Is(err, appErrors.ErrNoRate):
		return 404 // not found
	case errors.Is(err, appErrors.ErrInvalidInput):
		return 400 // bad request
	case errors.Is(err, appErrors.ErrNoAPIKey):
		return 503 // rate service is unusable without a key
	case errors.Is(err, appErrors.ErrBadResponse):
		return 502 // upstream replied with garbage
	default:
		return 500 // internal error
	}
}
