// Package weather looks up current conditions from the OpenWeatherMap API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jengzang/quiet-spots-go/internal/models"
)

// FailureMessage is shown in place of the weather when the lookup fails for any reason.
const FailureMessage = "天気情報の取得に失敗しました"

// DefaultBaseURL is the OpenWeatherMap current weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// ErrMissingAPIKey is returned without a network call when no key is configured.
var ErrMissingAPIKey = errors.New("weather: api key is not configured")

// StatusError reports a non-200 response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather: unexpected status %d", e.StatusCode)
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLanguage sets the description language (default "ja").
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.lang = lang
	}
}

// WithUnits sets the unit system (default "metric").
func WithUnits(units string) Option {
	return func(c *Client) {
		c.units = units
	}
}

// Client performs one synchronous lookup per call. It never retries or caches.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	lang       string
	units      string
}

// NewClient creates a client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		lang:       "ja",
		units:      "metric",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type currentResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// Current fetches the current weather for a city.
func (c *Client) Current(ctx context.Context, city string) (*models.WeatherReading, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("lang", c.lang)
	q.Set("units", c.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "weather: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "weather: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, eris.Wrap(err, "weather: decode response")
	}
	if len(body.Weather) == 0 || body.Main.Temp == nil {
		return nil, eris.New("weather: response has no description or temperature")
	}

	return &models.WeatherReading{
		City:         city,
		Description:  body.Weather[0].Description,
		TemperatureC: *body.Main.Temp,
	}, nil
}

// Describe returns "description（temp℃）", or FailureMessage on any error.
func (c *Client) Describe(ctx context.Context, city string) string {
	reading, err := c.Current(ctx, city)
	if err != nil {
		zap.L().Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		return FailureMessage
	}
	return Format(reading)
}

// Format renders a reading the way the dashboard shows it. Whole degrees keep
// one decimal place, so 21 reads "21.0".
func Format(r *models.WeatherReading) string {
	prec := -1
	if t := r.TemperatureC; t == math.Trunc(t) && !math.IsInf(t, 0) {
		prec = 1
	}
	temp := strconv.FormatFloat(r.TemperatureC, 'f', prec, 64)
	return fmt.Sprintf("%s（%s℃）", r.Description, temp)
}
