package phone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrNoResults = errors.New("owm: no results")

// Source produces the report sent in answer to a weather request.
type Source interface {
	Fetch(ctx context.Context) (Report, error)
}

// OWM fetches the weather near a position from an OpenWeatherMap-style
// "find city" endpoint.
type OWM struct {
	BaseURL  string
	Lat, Lon float64
	Client   *http.Client
}

func NewOWM(baseURL string, lat, lon float64, timeout time.Duration) *OWM {
	return &OWM{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Lat:     lat,
		Lon:     lon,
		Client:  &http.Client{Timeout: timeout},
	}
}

type owmFind struct {
	List []struct {
		Name string `json:"name"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			ID int `json:"id"`
		} `json:"weather"`
	} `json:"list"`
}

func (o *OWM) Fetch(ctx context.Context) (Report, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(o.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(o.Lon, 'f', -1, 64))
	q.Set("cnt", "1")
	u := o.BaseURL + "/find/city?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Report{}, fmt.Errorf("owm: %w", err)
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("owm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("owm: status %d", resp.StatusCode)
	}

	var body owmFind
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&body); err != nil {
		return Report{}, fmt.Errorf("owm: decode: %w", err)
	}
	if len(body.List) == 0 {
		return Report{}, ErrNoResults
	}
	city := body.List[0]
	if len(city.Weather) == 0 {
		return Report{}, fmt.Errorf("owm: %q has no conditions", city.Name)
	}
	return Report{
		Icon:        IconFromWeatherID(city.Weather[0].ID),
		Temperature: FormatTemperature(city.Main.Temp),
		City:        city.Name,
	}, nil
}

// Static always reports the same weather.
type Static Report

func (s Static) Fetch(context.Context) (Report, error) { return Report(s), nil }
