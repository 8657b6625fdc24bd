package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Nominatim reverse-geocodes against a Nominatim-compatible endpoint.
type Nominatim struct {
	baseURL string
	client  *retryablehttp.Client
}

func NewNominatim(baseURL string) *Nominatim {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil
	return &Nominatim{baseURL: baseURL, client: client}
}

func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		n.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lng)),
	)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "civicseva-api")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.DisplayName == "" {
		return "", fmt.Errorf("geocoder returned empty address")
	}
	return body.DisplayName, nil
}
