package rates

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const DefaultECBURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

type ecbCube struct {
	Time     string    `xml:"time,attr"`
	Currency string    `xml:"currency,attr"`
	Rate     string    `xml:"rate,attr"`
	Cubes    []ecbCube `xml:"Cube"`
}

type ecbEnvelope struct {
	XMLName xml.Name  `xml:"Envelope"`
	Cubes   []ecbCube `xml:"Cube"`
}

// ParseECB extracts every Cube element carrying a currency attribute from the
// eurofxref daily envelope. Rate strings are returned as-is.
func ParseECB(r io.Reader) ([]Entry, error) {
	const op = "rates.ParseECB"

	var env ecbEnvelope
	if err := xml.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var entries []Entry
	var walk func(cubes []ecbCube)
	walk = func(cubes []ecbCube) {
		for _, c := range cubes {
			if c.Currency != "" {
				entries = append(entries, Entry{Currency: c.Currency, Value: c.Rate})
			}
			walk(c.Cubes)
		}
	}
	walk(env.Cubes)

	return entries, nil
}

// Fetcher downloads the raw rate entries of one feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

type ECBClient struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

func NewECBClient(url string, timeout time.Duration, insecureTLS bool, log *slog.Logger) *ECBClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &ECBClient{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log.With(slog.String("component", "ecb_client")),
	}
}

func (c *ECBClient) Fetch(ctx context.Context) ([]Entry, error) {
	const op = "rates.ECBClient.Fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	entries, err := ParseECB(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Debug("ecb feed downloaded", slog.Int("entries", len(entries)))
	return entries, nil
}
