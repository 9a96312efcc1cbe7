package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/sirupsen/logrus"
)

// Client загружает снимок набора данных по HTTP
type Client struct {
	url        string
	parser     Parser
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient создает новый Client
func NewClient(url string, timeout time.Duration, parser Parser, logger *logrus.Logger) *Client {
	return &Client{
		url:    url,
		parser: parser,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch скачивает и разбирает документ целиком
func (c *Client) Fetch(ctx context.Context) ([]*models.Incident, error) {
	log := c.logger.WithField("url", c.url)
	log.Info("Fetching dataset snapshot...")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w: %w", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset source returned status %d: %w", resp.StatusCode, models.ErrUpstream)
	}

	doc := &Document{}
	if err := json.NewDecoder(resp.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w: %w", models.ErrUpstream, err)
	}

	incidents, err := c.parser.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	log.WithField("count", len(incidents)).Info("Dataset snapshot parsed successfully")
	return incidents, nil
}
