package currency

import "fmt"

// RateTable maps a currency code ("EUR") to how many units of that currency
// one unit of the base currency buys.
type RateTable map[string]float64

// ratesResponse is the shape of a successful currency API reply:
// {"data": {"EUR": {"value": "0.9"}, ...}}
type ratesResponse struct {
	Data map[string]struct {
		Value string `json:"value"`
	} `json:"data"`
}

// StatusError is returned when the rate service answers with a non-2xx
// status. It is deliberately not part of the domain error set so callers
// can tell "service rejected us" from "our data is wrong".
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rate service returned status %d", e.Code)
}
