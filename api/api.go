package api

import (
	"fmt"
	"strconv"

	"github.com/0xcafe-io/iz"
	"github.com/Egor603/curswork1/internal/currency"
	"github.com/Egor603/curswork1/internal/finance"
	"github.com/Egor603/curswork1/logging"
	"github.com/google/uuid"
)

type Api struct {
	Tracker  *finance.FinanceTracker
	Currency *currency.CurrencyService
	Rates    *currency.RateProvider
}

func NewApi(tracker *finance.FinanceTracker, currencyService *currency.CurrencyService, rates *currency.RateProvider) *Api {
	return &Api{
		Tracker:  tracker,
		Currency: currencyService,
		Rates:    rates,
	}
}

func (api *Api) GetRatesHandler(r *iz.Request) iz.Responder {
	traceId := uuid.New().String()

	base := r.URL.Query().Get("base")
	if base == "" {
		return iz.Respond().Status(400).Text("'base' query parameter is required.")
	}

	rates, err := api.Rates.GetRates(base)
	if err != nil {
		logging.Logger.WithField("trace_id", traceId).Errorf("Failed to get rates for %s: %v", base, err)
		msg := fmt.Sprintf("failed to get rates: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	resp := RatesResponse{
		Base:  base,
		Rates: rates,
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) RefreshRatesHandler(r *iz.Request) iz.Responder {
	api.Rates.ClearCache()
	resp := CacheClearedResponse{
		Message: "Rates cache cleared",
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) ConvertHandler(r *iz.Request) iz.Responder {
	traceId := uuid.New().String()
	params := r.URL.Query()

	amountStr := params.Get("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		msg := fmt.Sprintf("invalid amount: '%s'", amountStr)
		return iz.Respond().Status(400).Text(msg)
	}

	from := params.Get("from")
	to := params.Get("to")
	if from == "" || to == "" {
		return iz.Respond().Status(400).Text("'from' and 'to' query parameters are required.")
	}

	result, err := api.Currency.Convert(amount, from, to)
	if err != nil {
		logging.Logger.WithField("trace_id", traceId).Errorf("Failed to convert %s to %s: %v", from, to, err)
		msg := fmt.Sprintf("conversion failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	resp := ConvertResponse{
		Amount: amount,
		From:   from,
		To:     to,
		Result: result,
	}
	return iz.Respond().Status(200).JSON(resp)
}

func (api *Api) SimpleSearchHandler(r *iz.Request) iz.Responder {
	traceId := uuid.New().String()

	query := r.URL.Query().Get("query")
	if query == "" {
		return iz.Respond().Status(400).Text("'query' query parameter is required.")
	}

	result, err := api.Tracker.SimpleSearch(query)
	if err != nil {
		logging.Logger.WithField("trace_id", traceId).Errorf("Failed to search transactions: %v", err)
		msg := fmt.Sprintf("search failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text(result)
}

func (api *Api) PhoneSearchHandler(r *iz.Request) iz.Responder {
	traceId := uuid.New().String()

	result, err := api.Tracker.PhoneSearch()
	if err != nil {
		logging.Logger.WithField("trace_id", traceId).Errorf("Failed to search phone transactions: %v", err)
		msg := fmt.Sprintf("search failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text(result)
}

func (api *Api) PeopleTransferSearchHandler(r *iz.Request) iz.Responder {
	traceId := uuid.New().String()

	result, err := api.Tracker.PeopleTransferSearch()
	if err != nil {
		logging.Logger.WithField("trace_id", traceId).Errorf("Failed to search people transfers: %v", err)
		msg := fmt.Sprintf("search failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}
	return iz.Respond().Status(200).Text(result)
}

func (api *Api) InvestmentBankHandler(r *iz.Request) iz.Responder {
	traceId := uuid.New().String()
	params := r.URL.Query()

	month := params.Get("month")

	limitStr := params.Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		msg := fmt.Sprintf("invalid limit: '%s'", limitStr)
		return iz.Respond().Status(400).Text(msg)
	}

	total, err := api.Tracker.InvestmentBank(month, limit)
	if err != nil {
		logging.Logger.WithField("trace_id", traceId).Errorf("Failed to calculate investment bank: %v", err)
		msg := fmt.Sprintf("calculation failed: %v", err)
		return iz.Respond().Status(httpStatusFromError(err)).Text(msg)
	}

	resp := InvestmentResponse{
		Month: month,
		Limit: limit,
		Total: total,
	}
	return iz.Respond().Status(200).JSON(resp)
}
