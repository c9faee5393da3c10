// chess.com public API implementation of [GamesSource]
//
// Endpoints per https://www.chess.com/news/view/published-data-api
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/RedDocMD/cc2lc/internal/models"
	"github.com/RedDocMD/cc2lc/internal/shared"
	"golang.org/x/time/rate"
)

const defaultChessComBaseURL = "https://api.chess.com/pub"

// archivesResponse is the payload of the archives listing endpoint.
type archivesResponse struct {
	Archives []string `json:"archives"`
}

// gamesResponse is the payload of the games-for-month endpoint.
type gamesResponse struct {
	Games []models.RawGame `json:"games"`
}

// ChessComService implements [GamesSource] against the chess.com public API.
//
// Requests pass through a politeness rate limiter; the public API is
// unauthenticated but unhappy about bursts.
type ChessComService struct {
	baseURL    string
	username   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewChessComService creates a chess.com client for the given account.
//
// requestsPerSecond bounds the request rate; values <= 0 fall back to 2 req/s.
// The HTTP client defaults to [http.DefaultClient].
func NewChessComService(baseURL, username string, requestsPerSecond float64, client *http.Client) *ChessComService {
	if baseURL == "" {
		baseURL = defaultChessComBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.0
	}

	return &ChessComService{
		baseURL:    baseURL,
		username:   username,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Name returns the service name.
func (c *ChessComService) Name() string {
	return "chess.com"
}

// ListArchives returns the archive URLs for the account's full game history.
func (c *ChessComService) ListArchives(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/player/%s/games/archives", c.baseURL, c.username)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload archivesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse archives response: %v", shared.ErrSourceUnavailable, err)
	}

	return payload.Archives, nil
}

// FetchGames returns all games in one archive month, in payload order.
func (c *ChessComService) FetchGames(ctx context.Context, archiveURL string) ([]models.RawGame, error) {
	body, err := c.get(ctx, archiveURL)
	if err != nil {
		return nil, err
	}

	var payload gamesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse games response: %v", shared.ErrSourceUnavailable, err)
	}

	return payload.Games, nil
}

// get performs a rate-limited GET and returns the response body.
//
// Transport failures and non-200 statuses wrap [shared.ErrSourceUnavailable];
// the caller decides whether the run survives (it does not).
func (c *ChessComService) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrSourceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", shared.ErrSourceUnavailable, url, resp.StatusCode)
	}

	return body, nil
}
