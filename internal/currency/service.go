package currency

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	appErrors "github.com/Egor603/curswork1/errors"
	"github.com/Egor603/curswork1/logging"
	"golang.org/x/sync/singleflight"
)

const DefaultAPIURL = "https://api.currencyapi.com/v3/latest"

// RateProvider fetches rate tables from the external currency API and
// memoizes them per base currency. The cache has no expiry; call ClearCache
// to force fresh rates.
type RateProvider struct {
	apiKey string
	apiURL string
	client *http.Client

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]RateTable
}

func NewRateProvider(apiKey string, apiURL string, client *http.Client) *RateProvider {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &RateProvider{
		apiKey: apiKey,
		apiURL: apiURL,
		client: client,
		cache:  make(map[string]RateTable),
	}
}

// GetRates returns the rate table for the given base currency, fetching it
// once and serving every later call from cache. Transport errors pass
// through unwrapped; a non-2xx status comes back as *StatusError.
func (p *RateProvider) GetRates(baseCurrency string) (RateTable, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: API key is not configured", appErrors.ErrNoAPIKey)
	}

	p.mu.RLock()
	table, ok := p.cache[baseCurrency]
	p.mu.RUnlock()
	if ok {
		return table.clone(), nil
	}

	// Concurrent misses for the same base collapse into one request.
	result, err, _ := p.group.Do(baseCurrency, func() (interface{}, error) {
		p.mu.RLock()
		cached, ok := p.cache[baseCurrency]
		p.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fetched, err := p.fetchRates(baseCurrency)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.cache[baseCurrency] = fetched
		p.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(RateTable).clone(), nil
}

func (p *RateProvider) fetchRates(baseCurrency string) (RateTable, error) {
	query := url.Values{}
	query.Set("apikey", p.apiKey)
	query.Set("base_currency", baseCurrency)
	fullURL := p.apiURL + "?" + query.Encode()

	resp, err := p.client.Get(fullURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrBadResponse, err)
	}
	if parsed.Data == nil {
		return nil, fmt.Errorf("%w: 'data' field is missing", appErrors.ErrBadResponse)
	}

	table := make(RateTable, len(parsed.Data))
	for code, entry := range parsed.Data {
		value, err := strconv.ParseFloat(entry.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rate for %s is not a number: %q", appErrors.ErrBadResponse, code, entry.Value)
		}
		table[code] = value
	}

	logging.Logger.Infof("fetched %d rates for base currency %s", len(table), baseCurrency)
	return table, nil
}

// ClearCache drops every memoized rate table. The next GetRates call for
// any base will hit the network again.
func (p *RateProvider) ClearCache() {
	p.mu.Lock()
	p.cache = make(map[string]RateTable)
	p.mu.Unlock()
}

func (t RateTable) clone() RateTable {
	copied := make(RateTable, len(t))
	for code, value := range t {
		copied[code] = value
	}
	return copied
}

// RateSource is what CurrencyService needs from a rate provider.
type RateSource interface {
	GetRates(baseCurrency string) (RateTable, error)
}

type CurrencyService struct {
	rates RateSource
}

func NewCurrencyService(rates RateSource) CurrencyService {
	return CurrencyService{rates: rates}
}

// Convert returns the amount denominated in toCurrency. The table is
// fetched with toCurrency as base, so each entry reads "units of X per one
// unit of toCurrency" and the conversion is a plain division.
func (cs *CurrencyService) Convert(amount float64, fromCurrency string, toCurrency string) (float64, error) {
	table, err := cs.rates.GetRates(toCurrency)
	if err != nil {
		return 0, err
	}

	rate, ok := table[fromCurrency]
	if !ok {
		return 0, fmt.Errorf("%w: no rate for %s", appErrors.ErrNoRate, fromCurrency)
	}

	return amount / rate, nil
}
