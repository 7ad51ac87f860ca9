package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type Options struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// NominatimGeocoder implements ports.Geocoder against the OpenStreetMap
// Nominatim search API.
//
// It issues exactly one request per Geocode call. Spacing between calls is the
// caller's responsibility (see services.GeocodeQueue).
type NominatimGeocoder struct {
	session      *http.Client
	baseURL      string
	userAgent    string
	countryCodes string
	logger       *zap.Logger
}

func NewNominatimGeocoder(opts Options, logger *zap.Logger) (*NominatimGeocoder, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("nominatim base url is empty")
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		return nil, errors.New("nominatim requires a User-Agent")
	}

	session := opts.HTTPClient
	if session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		session = &http.Client{Timeout: timeout}
	}

	return &NominatimGeocoder{
		session:      session,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		userAgent:    opts.UserAgent,
		countryCodes: opts.CountryCodes,
		logger:       logging.OrNop(logger),
	}, nil
}

// Geocode resolves address to its first match. found is false when Nominatim
// returns an empty result list.
func (g *NominatimGeocoder) Geocode(
	ctx context.Context,
	address string,
) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, g.logger, "nominatim.Geocode")(&err)

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, errors.New("geocode: address must not be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode: create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("limit", "1")
	if g.countryCodes != "" {
		q.Set("countrycodes", g.countryCodes)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.do(req)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: execute request: %w", address, err)
	}
	defer resp.Body.Close()

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lat), 64)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: invalid latitude %q: %w", address, results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lon), 64)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("geocode %q: invalid longitude %q: %w", address, results[0].Lon, err)
	}

	g.logger.Debug("geocoded address",
		zap.String("address", address),
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.String("display_name", results[0].DisplayName),
	)

	return domain.Coordinates{Lat: lat, Lng: lng}, true, nil
}
