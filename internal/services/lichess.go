// lichess import API implementation of [GameSink]
//
// https://lichess.org/api#tag/Games/operation/gameImport
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RedDocMD/cc2lc/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

const defaultLichessBaseURL = "https://lichess.org"

// DefaultImportBackoff is the cooldown after a 429 before the same submission
// is retried. Lichess asks for a full minute.
const DefaultImportBackoff = 61 * time.Second

// OAuthClient builds an HTTP client that sends the lichess personal API token
// as a bearer token on every request.
func OAuthClient(token string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(context.Background(), src)
}

// importResult is the decoded outcome of one import submission. Exactly one
// of the three states holds: success (URL set), rate limited, or rejected.
type importResult struct {
	url         string
	rateLimited bool
	status      int
}

// importResponse is the JSON body of a successful import.
type importResponse struct {
	URL string `json:"url"`
}

// LichessService implements [GameSink] against the lichess import endpoint.
type LichessService struct {
	baseURL    string
	httpClient *http.Client
	backoff    time.Duration
	logger     *log.Logger
}

// NewLichessService creates a lichess import client.
//
// The client should come from [OAuthClient] so requests carry the API token.
// A non-positive backoff falls back to [DefaultImportBackoff].
func NewLichessService(baseURL string, client *http.Client, backoff time.Duration, logger *log.Logger) *LichessService {
	if baseURL == "" {
		baseURL = defaultLichessBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if backoff <= 0 {
		backoff = DefaultImportBackoff
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &LichessService{
		baseURL:    baseURL,
		httpClient: client,
		backoff:    backoff,
		logger:     logger,
	}
}

// Name returns the service name.
func (l *LichessService) Name() string {
	return "lichess"
}

// ImportGame submits a PGN and returns the URL of the imported game.
//
// A 429 response suspends the run for the configured backoff and the same
// submission is retried, as many times as it takes; every other non-success
// status wraps [shared.ErrSinkRejected] and is final.
func (l *LichessService) ImportGame(ctx context.Context, pgn string) (string, error) {
	for {
		res, err := l.submit(ctx, pgn)
		if err != nil {
			return "", err
		}

		if res.rateLimited {
			l.logger.Warn("rate limited by lichess, backing off", "wait", l.backoff)
			select {
			case <-time.After(l.backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			l.logger.Info("resuming import after backoff")
			continue
		}

		if res.url == "" {
			return "", fmt.Errorf("%w: import returned status %d", shared.ErrSinkRejected, res.status)
		}

		return res.url, nil
	}
}

// submit performs one import POST and decodes the outcome into an
// [importResult]. Only transport-level failures surface as errors here.
func (l *LichessService) submit(ctx context.Context, pgn string) (importResult, error) {
	form := url.Values{"pgn": {pgn}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/api/import", strings.NewReader(form.Encode()))
	if err != nil {
		return importResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return importResult{}, fmt.Errorf("import request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return importResult{rateLimited: true, status: resp.StatusCode}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return importResult{status: resp.StatusCode}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return importResult{}, fmt.Errorf("failed to read import response: %w", err)
	}

	var payload importResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return importResult{}, fmt.Errorf("failed to parse import response: %w", err)
	}

	return importResult{url: payload.URL, status: resp.StatusCode}, nil
}
