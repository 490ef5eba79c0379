package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"phonecheck/internal/domain"
	"phonecheck/internal/platform/config"
)

// Client queries a telecom data provider for carrier and country details.
// The interface is kept small so tests can stub quickly.
type Client interface {
	Lookup(ctx context.Context, number string) (domain.CarrierInfo, error)
}

// HTTPClient talks to a Twilio-compatible lookup API:
// GET {base}/v1/PhoneNumbers/{e164}?Type=carrier with basic auth.
type HTTPClient struct {
	baseURL    string
	accountSID string
	authToken  string
	client     *http.Client
}

// NewHTTPClient builds the production lookup client.
func NewHTTPClient(cfg config.CarrierConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

type lookupResponse struct {
	Carrier *struct {
		Name string `json:"name"`
	} `json:"carrier"`
	CountryCode string `json:"country_code"`
}

// Lookup fetches carrier details for a normalized E.164 number.
func (c *HTTPClient) Lookup(ctx context.Context, number string) (domain.CarrierInfo, error) {
	endpoint := fmt.Sprintf("%s/v1/PhoneNumbers/%s?Type=carrier", c.baseURL, url.PathEscape(number))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.CarrierInfo{}, fmt.Errorf("build lookup request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.CarrierInfo{}, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.CarrierInfo{}, fmt.Errorf("lookup provider returned status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.CarrierInfo{}, fmt.Errorf("decode lookup response: %w", err)
	}

	info := domain.CarrierInfo{Country: body.CountryCode}
	if body.Carrier != nil {
		info.Carrier = body.Carrier.Name
	}
	if info.Carrier == "" {
		info.Carrier = domain.UnknownValue
	}
	if info.Country == "" {
		info.Country = domain.UnknownValue
	}
	return info, nil
}

// MockClient returns deterministic data with a configurable latency to mimic
// real-world calls.
type MockClient struct {
	Latency time.Duration
	Info    domain.CarrierInfo
	Err     error
}

func (c MockClient) Lookup(_ context.Context, _ string) (domain.CarrierInfo, error) {
	time.Sleep(c.Latency)
	if c.Err != nil {
		return domain.CarrierInfo{}, c.Err
	}
	return c.Info, nil
}
