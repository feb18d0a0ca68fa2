package statement

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/insightdelivered/techmarket/internal/models"
)

// maxBodySize caps how much of a statement response is read.
const maxBodySize = 4 << 20

// StatusError is returned when the statement endpoint answers with a
// non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("statement endpoint returned status %d", e.Code)
}

// Fetcher loads the transaction records published at an endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]models.TransactionRecord, error)
}

// Client fetches statements over HTTP. Each call issues exactly one request.
type Client struct {
	http *http.Client
}

// NewClient wraps the given HTTP client. A nil client means http.DefaultClient.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{http: hc}
}

// Fetch GETs endpoint and decodes its body as a JSON array of records.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]models.TransactionRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build statement request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var records []models.TransactionRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode statement: %w", err)
	}
	return records, nil
}
