// Package weather wraps the Open-Meteo forecast endpoint into the planner's
// DailyWeather sequence. The scheduler only ever sees the materialised slice.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/chrisharrington/irrigo/internal/model/entities"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

type omResponse struct {
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Timezone         string `json:"timezone"`
	Daily            struct {
		Time             []string   `json:"time"`
		ET0              []*float64 `json:"et0_fao_evapotranspiration"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
		Sunrise          []string   `json:"sunrise"`
	} `json:"daily"`
}

// OpenMeteoClient fetches daily ET0, rainfall and sunrise for a coordinate.
type OpenMeteoClient struct {
	baseURL string
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoClient() *OpenMeteoClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "open-meteo",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &OpenMeteoClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 8 * time.Second},
		circuit: cb,
	}
}

// NewOpenMeteoClientWithBaseURL is used by tests to point at a stub server.
func NewOpenMeteoClientWithBaseURL(base string) *OpenMeteoClient {
	c := NewOpenMeteoClient()
	c.baseURL = base
	return c
}

// FetchDailyForecast returns up to days of chronological DailyWeather for the
// coordinate. Transient failures are retried with exponential backoff behind a
// circuit breaker; a missing ET0 value stays nil for the scheduler to default.
func (c *OpenMeteoClient) FetchDailyForecast(ctx context.Context, lat, lon float64, days int) ([]entities.DailyWeather, error) {
	if days <= 0 {
		return nil, fmt.Errorf("open-meteo: non-positive forecast horizon %d", days)
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "et0_fao_evapotranspiration,precipitation_sum,sunrise")
	q.Set("timezone", "auto")
	q.Set("forecast_days", fmt.Sprintf("%d", days))
	reqURL := c.baseURL + "?" + q.Encode()

	var out omResponse
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	err := backoff.Retry(func() error {
		_, cerr := c.circuit.Execute(func() (interface{}, error) {
			return nil, c.fetchOnce(ctx, reqURL, &out)
		})
		if cerr == gobreaker.ErrOpenState || cerr == gobreaker.ErrTooManyRequests {
			return backoff.Permanent(cerr)
		}
		return cerr
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("open-meteo fetch: %w", err)
	}

	return decodeDaily(out)
}

func (c *OpenMeteoClient) fetchOnce(ctx context.Context, reqURL string, out *omResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("open-meteo status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeDaily(resp omResponse) ([]entities.DailyWeather, error) {
	if len(resp.Daily.Time) == 0 {
		return nil, fmt.Errorf("open-meteo: no daily data")
	}

	loc := time.FixedZone(resp.Timezone, resp.UTCOffsetSeconds)
	out := make([]entities.DailyWeather, 0, len(resp.Daily.Time))
	for i, ds := range resp.Daily.Time {
		date, err := time.ParseInLocation("2006-01-02", ds, loc)
		if err != nil {
			return nil, fmt.Errorf("open-meteo: bad date %q: %w", ds, err)
		}
		day := entities.DailyWeather{Date: date}
		if i < len(resp.Daily.ET0) {
			day.ET0Mm = resp.Daily.ET0[i]
		}
		if i < len(resp.Daily.PrecipitationSum) {
			day.RainfallMm = resp.Daily.PrecipitationSum[i]
		}
		if i < len(resp.Daily.Sunrise) && resp.Daily.Sunrise[i] != "" {
			if sr, err := time.ParseInLocation("2006-01-02T15:04", resp.Daily.Sunrise[i], loc); err == nil {
				day.Sunrise = &sr
			}
		}
		out = append(out, day)
	}
	return out, nil
}
