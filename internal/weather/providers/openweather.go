package providers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/i474232898/garage-planner/internal/weather"
)

// OpenWeatherProvider implements weather.ForecastFetcher for the OpenWeatherMap
// 5 day / 3 hour forecast.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	lang    string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherProvider(client *http.Client, apiKey, lang string) *OpenWeatherProvider {
	if lang == "" {
		lang = "pt_br"
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		lang:    lang,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		client:  client,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// openWeatherForecast mirrors the parts of the /forecast payload we read.
type openWeatherForecast struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// openWeatherError is the envelope sent with non-2xx answers, e.g.
// {"cod":"404","message":"city not found"}.
type openWeatherError struct {
	Message string `json:"message"`
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, location string) (weather.RawForecast, error) {
	if IsPlaceholderKey(p.apiKey) {
		log.Printf("ERROR: openweather api key is missing or a placeholder")
		return weather.RawForecast{}, fmt.Errorf("%w: set OPENWEATHER_API_KEY", weather.ErrConfiguration)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", location)
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lang", p.lang)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, buildRequest)
	if err != nil {
		return weather.RawForecast{}, err
	}

	if !resp.ok() {
		var envelope openWeatherError
		_ = json.Unmarshal(resp.Body, &envelope)
		return weather.RawForecast{}, weather.NewProviderError(resp.StatusCode, envelope.Message)
	}

	var payload openWeatherForecast
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return weather.RawForecast{}, malformedBody(resp.StatusCode, err)
	}

	samples, err := p.toSamples(payload)
	if err != nil {
		return weather.RawForecast{}, err
	}

	return weather.RawForecast{
		Provider: p.name,
		Location: payload.City.Name,
		Samples:  samples,
	}, nil
}

func (p *OpenWeatherProvider) toSamples(payload openWeatherForecast) ([]weather.ForecastSample, error) {
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("%w: empty or missing list", weather.ErrDataShape)
	}

	samples := make([]weather.ForecastSample, 0, len(payload.List))
	for i, item := range payload.List {
		switch {
		case item.Dt == 0:
			return nil, fmt.Errorf("%w: list[%d] has no dt", weather.ErrDataShape, i)
		case item.Main.Temp == nil:
			return nil, fmt.Errorf("%w: list[%d] has no main.temp", weather.ErrDataShape, i)
		case len(item.Weather) == 0:
			return nil, fmt.Errorf("%w: list[%d] has no weather entry", weather.ErrDataShape, i)
		}

		samples = append(samples, weather.ForecastSample{
			Timestamp:    time.Unix(item.Dt, 0).UTC(),
			TemperatureC: *item.Main.Temp,
			Description:  item.Weather[0].Description,
			IconCode:     item.Weather[0].Icon,
		})
	}
	return samples, nil
}
