package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/0xcafe-io/iz"
	"github.com/Egor603/curswork1/api"
	"github.com/Egor603/curswork1/internal/currency"
	"github.com/Egor603/curswork1/internal/finance"
	"github.com/Egor603/curswork1/internal/storage"
	"github.com/Egor603/curswork1/logging"
	"github.com/rs/cors"
)

var corsConf = cors.New(cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders:   []string{"Authorization", "Content-Type"},
	AllowCredentials: true,
})

func main() {
	if err := logging.Init("debug"); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return
	}

	logging.Logger.Info("application starting...")

	var financeStorage finance.Storage
	if strings.ToLower(os.Getenv("STORAGE")) == "inmemory" {
		financeStorage = storage.NewInMemoryStorage(nil)
	} else {
		db, err := storage.Init()
		if err != nil {
			logging.Logger.Errorf("failed to initialize database: %v", err)
			return
		}
		financeStorage = storage.NewMySQLStorage(db)
	}

	tracker := finance.NewFinanceTracker(financeStorage)
	logging.Logger.Infof("transaction storage: %s", tracker.StorageType)

	rates := currency.NewRateProvider(os.Getenv("CURRENCY_API_KEY"), os.Getenv("CURRENCY_API_URL"), nil)
	currencyService := currency.NewCurrencyService(rates)

	server := http.NewServeMux()
	api := api.NewApi(&tracker, &currencyService, rates)

	// CURRENCY ENDPOINTS.
	server.HandleFunc("GET /api/rates", iz.Bind(api.GetRatesHandler))              // Rate table for a base currency
	server.HandleFunc("POST /api/rates/refresh", iz.Bind(api.RefreshRatesHandler)) // Drop cached rates
	server.HandleFunc("GET /api/convert", iz.Bind(api.ConvertHandler))             // Convert an amount between currencies

	// SEARCH ENDPOINTS.
	server.HandleFunc("GET /api/search", iz.Bind(api.SimpleSearchHandler))                   // Free-text search
	server.HandleFunc("GET /api/search/phone", iz.Bind(api.PhoneSearchHandler))              // Phone-number search
	server.HandleFunc("GET /api/search/transfers", iz.Bind(api.PeopleTransferSearchHandler)) // Person-to-person transfers

	// INVESTMENT ENDPOINTS.
	server.HandleFunc("GET /api/investment", iz.Bind(api.InvestmentBankHandler)) // Round-up savings for a month

	port := os.Getenv("APP_PORT")
	if port == "" {
		logging.Logger.Info("APP_PORT environment variable not set, using default port 8080")
		port = "8080"
	}
	fmt.Println("Starting server on port: ", port)
	handlerWithCors := corsConf.Handler(server)
	if err := http.ListenAndServe(":"+port, handlerWithCors); err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
