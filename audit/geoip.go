// audit/geoip.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
)

const fallbackIP = "127.0.0.1"

// Location is the best-effort result of the two lookup calls. Either half
// may be a default if its call failed.
type Location struct {
	IP      string
	Country string
	City    string
}

// GeoIPClient resolves the console's public IP and a coarse geolocation
// through third-party lookup services. Every call is best effort.
type GeoIPClient struct {
	ipLookupURL  string
	geoLookupURL string
	httpClient   *http.Client
}

func NewGeoIPClient(ipLookupURL, geoLookupURL string, timeout time.Duration) *GeoIPClient {
	return &GeoIPClient{
		ipLookupURL:  ipLookupURL,
		geoLookupURL: geoLookupURL,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Lookup returns the enrichment location. A failed IP lookup yields the
// loopback fallback; a failed geo lookup yields empty country/city. Lookup
// itself never fails.
func (g *GeoIPClient) Lookup(ctx context.Context) Location {
	location := Location{IP: fallbackIP}

	ip, err := g.lookupIP(ctx)
	if err != nil {
		logger.Warn("IP lookup failed, using loopback fallback", zap.Error(err))
		return location
	}
	location.IP = ip

	country, city, err := g.lookupGeo(ctx, ip)
	if err != nil {
		logger.Warn("Geolocation lookup failed", zap.String("ip", ip), zap.Error(err))
		return location
	}
	location.Country = country
	location.City = city
	return location
}

func (g *GeoIPClient) lookupIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.ipLookupURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup status %d", resp.StatusCode)
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.IP == "" {
		return "", fmt.Errorf("ip lookup returned empty address")
	}
	return payload.IP, nil
}

func (g *GeoIPClient) lookupGeo(ctx context.Context, ip string) (country, city string, err error) {
	url := fmt.Sprintf(g.geoLookupURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("geo lookup status %d", resp.StatusCode)
	}

	var payload struct {
		CountryName string `json:"country_name"`
		City        string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", err
	}
	return payload.CountryName, payload.City, nil
}
