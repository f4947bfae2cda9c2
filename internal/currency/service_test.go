package currency

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	appErrors "github.com/Egor603/curswork1/errors"
	"github.com/Egor603/curswork1/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Logger = logrus.New()
	logging.Logger.SetOutput(os.Stderr)
	os.Exit(m.Run())
}

// newRateServer returns a test server replying with the given body and
// status, and a counter of requests it has seen.
func newRateServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestGetRatesSuccess(t *testing.T) {
	server, _ := newRateServer(t, 200, `{"data": {"EUR": {"value": "0.9"}, "RUB": {"value": "94.5"}}}`)
	provider := NewRateProvider("dummy_key", server.URL, nil)

	rates, err := provider.GetRates("USD")
	require.NoError(t, err)
	require.Equal(t, 0.9, rates["EUR"])
	require.Equal(t, 94.5, rates["RUB"])
}

func TestGetRatesNoAPIKey(t *testing.T) {
	server, calls := newRateServer(t, 200, `{"data": {}}`)
	provider := NewRateProvider("", server.URL, nil)

	_, err := provider.GetRates("USD")
	require.ErrorIs(t, err, appErrors.ErrNoAPIKey)
	require.Equal(t, 0, *calls, "no network call should happen without an API key")
}

func TestGetRatesNetworkError(t *testing.T) {
	server, _ := newRateServer(t, 200, `{}`)
	server.Close() // connection refused from now on
	provider := NewRateProvider("dummy_key", server.URL, nil)

	_, err := provider.GetRates("USD")
	require.Error(t, err)

	// Transport failures pass through as-is, not as domain errors.
	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	require.NotErrorIs(t, err, appErrors.ErrBadResponse)
}

func TestGetRatesHTTPError(t *testing.T) {
	server, _ := newRateServer(t, 401, `{"message": "Invalid authentication credentials"}`)
	provider := NewRateProvider("dummy_key", server.URL, nil)

	_, err := provider.GetRates("USD")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 401, statusErr.Code)
}

func TestGetRatesInvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing data field", body: `{"error": "something went wrong"}`},
		{name: "data is not an object", body: `{"data": "oops"}`},
		{name: "value is not a number", body: `{"data": {"EUR": {"value": "abc"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newRateServer(t, 200, tt.body)
			provider := NewRateProvider("dummy_key", server.URL, nil)

			_, err := provider.GetRates("USD")
			require.ErrorIs(t, err, appErrors.ErrBadResponse)
		})
	}
}

func TestGetRatesCache(t *testing.T) {
	server, calls := newRateServer(t, 200, `{"data": {"EUR": {"value": "0.9"}}}`)
	provider := NewRateProvider("dummy_key", server.URL, nil)

	_, err := provider.GetRates("USD")
	require.NoError(t, err)
	require.Equal(t, 1, *calls)

	// Second call for the same base must be served from cache.
	_, err = provider.GetRates("USD")
	require.NoError(t, err)
	require.Equal(t, 1, *calls)

	// After an explicit clear the next call fetches again.
	provider.ClearCache()
	_, err = provider.GetRates("USD")
	require.NoError(t, err)
	require.Equal(t, 2, *calls)
}

func TestGetRatesCachedTableIsIsolated(t *testing.T) {
	server, _ := newRateServer(t, 200, `{"data": {"EUR": {"value": "0.9"}}}`)
	provider := NewRateProvider("dummy_key", server.URL, nil)

	first, err := provider.GetRates("USD")
	require.NoError(t, err)
	first["EUR"] = 123.0

	second, err := provider.GetRates("USD")
	require.NoError(t, err)
	require.Equal(t, 0.9, second["EUR"], "callers must not be able to corrupt the cache")
}

// mockRateSource serves a fixed table, or an error.
type mockRateSource struct {
	table RateTable
	err   error
}

func (m *mockRateSource) GetRates(baseCurrency string) (RateTable, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

func TestConvertSuccess(t *testing.T) {
	service := NewCurrencyService(&mockRateSource{table: RateTable{"RUB": 90.0, "EUR": 0.85}})

	result, err := service.Convert(9000.0, "RUB", "USD")
	require.NoError(t, err)
	require.InDelta(t, 100.0, result, 1e-9)
}

func TestConvertSelfRate(t *testing.T) {
	service := NewCurrencyService(&mockRateSource{table: RateTable{"USD": 1.0}})

	result, err := service.Convert(42.5, "USD", "USD")
	require.NoError(t, err)
	require.InDelta(t, 42.5, result, 1e-9)
}

func TestConvertCurrencyNotFound(t *testing.T) {
	service := NewCurrencyService(&mockRateSource{table: RateTable{"EUR": 0.85}})

	_, err := service.Convert(100.0, "RUB", "USD")
	require.ErrorIs(t, err, appErrors.ErrNoRate)
	require.Contains(t, err.Error(), "RUB")
}

func TestConvertRateSourceFailure(t *testing.T) {
	wantErr := errors.New("rates unavailable")
	service := NewCurrencyService(&mockRateSource{err: wantErr})

	_, err := service.Convert(100.0, "RUB", "USD")
	require.ErrorIs(t, err, wantErr)
}
