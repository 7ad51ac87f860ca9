package routexl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.routexl.com"

type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client implements ports.TourOptimizer and ports.CredentialChecker on top of
// the RouteXL /tour endpoint.
//
// Credentials are fixed at construction. Submit never retries: a failed tour is
// reported to the caller as a classified domain.RouteError.
type Client struct {
	session  *http.Client
	baseURL  string
	username string
	password string
	logger   *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	session := cfg.HTTPClient
	if session == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		session = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		session:  session,
		baseURL:  baseURL,
		username: cfg.Username,
		password: cfg.Password,
		logger:   logging.OrNop(logger),
	}
}

func (c *Client) HasCredentials() bool {
	return c.username != "" && c.password != ""
}

// Submit posts locations as a tour request. The first location is the origin.
func (c *Client) Submit(
	ctx context.Context,
	locations []domain.TourLocation,
) (_ *domain.TourResult, err error) {
	defer obs.Time(ctx, c.logger, "routexl.Submit")(&err)

	if !c.HasCredentials() {
		metrics.TourSubmissions.WithLabelValues("missing_credentials").Inc()
		return nil, domain.NewMissingCredentialsError()
	}
	if len(locations) == 0 {
		return nil, domain.NewInvalidInputError("Geen locaties om te optimaliseren.", nil)
	}

	payload, err := json.Marshal(locations)
	if err != nil {
		return nil, fmt.Errorf("routexl submit: marshal locations: %w", err)
	}

	form := url.Values{}
	form.Set("locations", string(payload))

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/tour", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("routexl submit: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, c.classify(err)
	}
	defer resp.Body.Close()

	var decoded tourResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.TourSubmissions.WithLabelValues("transport").Inc()
		return nil, domain.NewProviderTransportError(
			"Geen route ontvangen van RouteXL.", resp.StatusCode,
			fmt.Errorf("routexl submit: decode response: %w", err),
		)
	}

	if len(decoded.Route) == 0 {
		metrics.TourSubmissions.WithLabelValues("transport").Inc()
		return nil, domain.NewProviderTransportError(
			"Geen route ontvangen van RouteXL.", resp.StatusCode,
			errors.New("routexl submit: response has no route"),
		)
	}

	out := &domain.TourResult{
		ID:    decoded.ID,
		Count: decoded.Count,
		Route: make(map[string]domain.TourStop, len(decoded.Route)),
	}
	for k, s := range decoded.Route {
		out.Route[k] = domain.TourStop{
			Name:     s.Name,
			Lat:      float64(s.Lat),
			Lng:      float64(s.Lng),
			Distance: float64(s.Distance),
			Arrival:  float64(s.Arrival),
		}
	}

	metrics.TourSubmissions.WithLabelValues("ok").Inc()
	c.logger.Info("routexl tour received",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("tour_id", out.ID),
		zap.Int("locations", len(locations)),
		zap.Int("stops", len(out.Route)),
	)
	return out, nil
}

// classify maps a failed HTTP exchange onto the route error taxonomy.
func (c *Client) classify(err error) error {
	var he *httpStatusError
	if !errors.As(err, &he) {
		metrics.TourSubmissions.WithLabelValues("transport").Inc()
		return domain.NewProviderTransportError(
			"RouteXL API Fout: "+err.Error(), 0,
			fmt.Errorf("routexl submit: execute request: %w", err),
		)
	}

	c.logger.Warn("routexl request rejected",
		zap.Int("status", he.Code),
		zap.String("body", he.Body),
	)

	switch he.Code {
	case http.StatusUnauthorized:
		metrics.TourSubmissions.WithLabelValues("auth").Inc()
		return domain.NewProviderAuthError(he.Code, he)
	case http.StatusTooManyRequests:
		metrics.TourSubmissions.WithLabelValues("quota").Inc()
		return domain.NewProviderQuotaError(he.Code, he)
	default:
		metrics.TourSubmissions.WithLabelValues("transport").Inc()
		return domain.NewProviderTransportError(
			"RouteXL API Fout: "+http.StatusText(he.Code), he.Code, he,
		)
	}
}
