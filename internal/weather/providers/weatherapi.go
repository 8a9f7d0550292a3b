package providers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/i474232898/garage-planner/internal/weather"
)

// WeatherAPIProvider implements weather.ForecastFetcher for WeatherAPI.com.
// Its hourly samples go through the same daily aggregation as OpenWeatherMap's.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	lang    string
	days    int
	baseURL string
	client  *http.Client
}

func NewWeatherAPIProvider(client *http.Client, apiKey, lang string, days int) *WeatherAPIProvider {
	if days <= 0 {
		days = 5
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		lang:    weatherAPILang(lang),
		days:    days,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		client:  client,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIForecast struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch int64    `json:"time_epoch"`
				TempC     *float64 `json:"temp_c"`
				Condition struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// weatherAPIError is e.g. {"error":{"code":1006,"message":"No matching location found."}}.
type weatherAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, location string) (weather.RawForecast, error) {
	if IsPlaceholderKey(p.apiKey) {
		log.Printf("ERROR: weatherapi api key is missing or a placeholder")
		return weather.RawForecast{}, fmt.Errorf("%w: set WEATHERAPI_API_KEY", weather.ErrConfiguration)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", location)
		values.Set("days", strconv.Itoa(p.days))
		values.Set("lang", p.lang)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, buildRequest)
	if err != nil {
		return weather.RawForecast{}, err
	}

	if !resp.ok() {
		var envelope weatherAPIError
		_ = json.Unmarshal(resp.Body, &envelope)
		return weather.RawForecast{}, weather.NewProviderError(resp.StatusCode, envelope.Error.Message)
	}

	var payload weatherAPIForecast
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return weather.RawForecast{}, malformedBody(resp.StatusCode, err)
	}

	var samples []weather.ForecastSample
	for d, day := range payload.Forecast.ForecastDay {
		for h, hour := range day.Hour {
			if hour.TimeEpoch == 0 || hour.TempC == nil {
				return weather.RawForecast{}, fmt.Errorf("%w: forecastday[%d].hour[%d] incomplete", weather.ErrDataShape, d, h)
			}
			samples = append(samples, weather.ForecastSample{
				Timestamp:    time.Unix(hour.TimeEpoch, 0).UTC(),
				TemperatureC: *hour.TempC,
				Description:  hour.Condition.Text,
				IconCode:     hour.Condition.Icon,
			})
		}
	}
	if len(samples) == 0 {
		return weather.RawForecast{}, fmt.Errorf("%w: no hourly samples", weather.ErrDataShape)
	}

	return weather.RawForecast{
		Provider: p.name,
		Location: payload.Location.Name,
		Samples:  samples,
	}, nil
}

// weatherAPILang maps OpenWeatherMap style codes (pt_br) to WeatherAPI's (pt).
func weatherAPILang(lang string) string {
	switch lang {
	case "", "pt_br", "pt_BR":
		return "pt"
	case "zh_cn":
		return "zh"
	default:
		return lang
	}
}
