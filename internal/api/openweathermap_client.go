package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"weatherdash/internal/metrics"
	"weatherdash/internal/models"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	EndpointCurrent  = "weather"
	EndpointForecast = "forecast"
)

// OpenWeatherMapClient is a client for the OpenWeatherMap current and forecast APIs
type OpenWeatherMapClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	units   string
	limiter *rate.Limiter
}

// ClientParams configures an OpenWeatherMapClient
type ClientParams struct {
	BaseURL           string
	APIKey            string
	Units             string
	RequestsPerSecond float64 // zero disables throttling
	Burst             int
	HTTPClient        *http.Client
}

// NewOpenWeatherMapClient creates a new OpenWeatherMap API client
func NewOpenWeatherMapClient(params ClientParams) *OpenWeatherMapClient {
	c := &OpenWeatherMapClient{
		client:  params.HTTPClient,
		baseURL: params.BaseURL,
		apiKey:  params.APIKey,
		units:   params.Units,
	}

	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.units == "" {
		c.units = "metric"
	}

	if params.RequestsPerSecond > 0 {
		burst := params.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(params.RequestsPerSecond), burst)
	}

	return c
}

// BuildURL builds the request URL for an endpoint and city
func (c *OpenWeatherMapClient) BuildURL(endpoint, city string) string {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", c.units)
	params.Set("appid", c.apiKey)

	return fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
}

// GetCurrentConditions fetches current weather for a city
func (c *OpenWeatherMapClient) GetCurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error) {
	var current models.CurrentConditions
	if err := c.get(ctx, EndpointCurrent, city, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

// GetForecast fetches the 5 day / 3 hour forecast for a city
func (c *OpenWeatherMapClient) GetForecast(ctx context.Context, city string) (*models.Forecast, error) {
	var forecast models.Forecast
	if err := c.get(ctx, EndpointForecast, city, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

func (c *OpenWeatherMapClient) get(ctx context.Context, endpoint, city string, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(endpoint, city), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, "transport_error", time.Since(start))
		// *url.Error carries the request URL, and with it the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, endpoint, city, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrCityNotFound, city)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s status %d, body: %s", ErrUpstream, endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	return nil
}
