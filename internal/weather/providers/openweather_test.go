package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/garage-planner/internal/weather"
)

const forecastBody = `{
  "cod": "200",
  "message": 0,
  "cnt": 3,
  "list": [
    {"dt": 1714543200, "main": {"temp": 17.4}, "weather": [{"description": "céu limpo", "icon": "01n"}]},
    {"dt": 1714564800, "main": {"temp": 24.1}, "weather": [{"description": "nuvens dispersas", "icon": "03d"}]},
    {"dt": 1714629600, "main": {"temp": 15.0}, "weather": [{"description": "chuva leve", "icon": "10n"}]}
  ],
  "city": {"name": "São Paulo", "country": "BR"}
}`

func newOpenWeatherTestServer(t *testing.T, status int, body string, hits *int32) *OpenWeatherProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "sao paulo", r.URL.Query().Get("q"))
		assert.Equal(t, "real-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "pt_br", r.URL.Query().Get("lang"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	p := NewOpenWeatherProvider(srv.Client(), "real-key", "")
	p.baseURL = srv.URL
	return p
}

func TestOpenWeatherFetchForecast(t *testing.T) {
	var hits int32
	p := newOpenWeatherTestServer(t, http.StatusOK, forecastBody, &hits)

	raw, err := p.FetchForecast(context.Background(), "sao paulo")

	require.NoError(t, err)
	assert.Equal(t, int32(1), hits)
	assert.Equal(t, "São Paulo", raw.Location)
	assert.Equal(t, "openweathermap", raw.Provider)
	require.Len(t, raw.Samples, 3)
	assert.Equal(t, time.Unix(1714564800, 0).UTC(), raw.Samples[1].Timestamp)
	assert.Equal(t, 24.1, raw.Samples[1].TemperatureC)
	assert.Equal(t, "nuvens dispersas", raw.Samples[1].Description)
	assert.Equal(t, "03d", raw.Samples[1].IconCode)
}

func TestOpenWeatherProviderMessageIsVerbatim(t *testing.T) {
	var hits int32
	p := newOpenWeatherTestServer(t, http.StatusNotFound, `{"cod":"404","message":"city not found"}`, &hits)

	_, err := p.FetchForecast(context.Background(), "sao paulo")

	var perr *weather.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
	assert.Equal(t, "city not found", perr.Message)
	assert.Equal(t, int32(1), hits)
}

func TestOpenWeatherProviderGenericMessage(t *testing.T) {
	var hits int32
	p := newOpenWeatherTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, &hits)

	_, err := p.FetchForecast(context.Background(), "sao paulo")

	assert.ErrorIs(t, err, weather.ErrProvider)
	assert.EqualError(t, err, "request failed with status 502")
}

func TestOpenWeatherMalformedBody(t *testing.T) {
	var hits int32
	p := newOpenWeatherTestServer(t, http.StatusOK, `{"list": [`, &hits)

	_, err := p.FetchForecast(context.Background(), "sao paulo")

	assert.ErrorIs(t, err, weather.ErrProvider)
}

func TestOpenWeatherDataShape(t *testing.T) {
	cases := map[string]string{
		"missing list":  `{"city": {"name": "X"}}`,
		"empty list":    `{"list": [], "city": {"name": "X"}}`,
		"no weather":    `{"list": [{"dt": 1714543200, "main": {"temp": 1}, "weather": []}]}`,
		"no temp":       `{"list": [{"dt": 1714543200, "main": {}, "weather": [{"description": "a"}]}]}`,
		"no timestamps": `{"list": [{"main": {"temp": 1}, "weather": [{"description": "a"}]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var hits int32
			p := newOpenWeatherTestServer(t, http.StatusOK, body, &hits)

			_, err := p.FetchForecast(context.Background(), "sao paulo")

			assert.ErrorIs(t, err, weather.ErrDataShape)
		})
	}
}

func TestOpenWeatherMissingCredentialSkipsRequest(t *testing.T) {
	for _, key := range []string{"", "   ", "SUA_CHAVE_COPIADA_AQUI", "your_api_key", "<api-key>"} {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))

		p := NewOpenWeatherProvider(srv.Client(), key, "pt_br")
		p.baseURL = srv.URL

		_, err := p.FetchForecast(context.Background(), "Recife")
		srv.Close()

		assert.ErrorIs(t, err, weather.ErrConfiguration, "key %q", key)
		assert.Zero(t, atomic.LoadInt32(&hits), "key %q", key)
	}
}

func TestOpenWeatherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenWeatherProvider(&http.Client{Timeout: time.Second}, "real-key", "pt_br")
	p.baseURL = url

	_, err := p.FetchForecast(context.Background(), "Recife")

	assert.ErrorIs(t, err, weather.ErrTransport)
	assert.NotContains(t, err.Error(), "real-key")
}

func TestIsPlaceholderKey(t *testing.T) {
	assert.True(t, IsPlaceholderKey(""))
	assert.True(t, IsPlaceholderKey("SUA_CHAVE_AQUI"))
	assert.True(t, IsPlaceholderKey("changeme"))
	assert.False(t, IsPlaceholderKey("b135fb2ad23b177010dd70f5cd1cfff0"))
}
