package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
)

// ForecastEntries is how many three-hour forecast slots are kept.
const ForecastEntries = 8

var ErrUnexpectedStatus = errors.New("unexpected weather api status")

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.openweathermap.org/data/2.5",
		Timeout: 5 * time.Second,
	}
}

// Provider returns current conditions and a short forecast for a position.
type Provider interface {
	Snapshot(ctx context.Context, at domain.Coordinates) (*domain.WeatherSnapshot, error)
}

// Client talks to the OpenWeather current and forecast endpoints.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config, client *http.Client) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: client}
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type currentResponse struct {
	Weather []condition `json:"weather"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
		Pop     float64     `json:"pop"`
	} `json:"list"`
}

// Snapshot fetches current conditions and the first forecast entries.
func (c *Client) Snapshot(ctx context.Context, at domain.Coordinates) (*domain.WeatherSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var cur currentResponse
	if err := c.get(ctx, "weather", at, &cur); err != nil {
		return nil, fmt.Errorf("fetching current weather: %w", err)
	}
	var fc forecastResponse
	if err := c.get(ctx, "forecast", at, &fc); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}

	snap := &domain.WeatherSnapshot{
		Current: domain.CurrentWeather{
			TemperatureC: cur.Main.Temp,
			WindSpeedMS:  cur.Wind.Speed,
			Humidity:     cur.Main.Humidity,
		},
	}
	if len(cur.Weather) > 0 {
		snap.Current.Condition = cur.Weather[0].Main
		snap.Current.Description = cur.Weather[0].Description
	}

	n := len(fc.List)
	if n > ForecastEntries {
		n = ForecastEntries
	}
	snap.Forecast = make([]domain.ForecastEntry, 0, n)
	for _, e := range fc.List[:n] {
		entry := domain.ForecastEntry{
			Time:              time.Unix(e.Dt, 0).UTC(),
			TemperatureC:      e.Main.Temp,
			PrecipProbability: e.Pop,
		}
		if len(e.Weather) > 0 {
			entry.Condition = e.Weather[0].Main
		}
		snap.Forecast = append(snap.Forecast, entry)
	}
	return snap, nil
}

func (c *Client) get(ctx context.Context, path string, at domain.Coordinates, out any) error {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", at.Latitude))
	params.Set("lon", fmt.Sprintf("%.6f", at.Longitude))
	params.Set("units", "metric")
	params.Set("appid", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/"+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
