package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RedDocMD/cc2lc/internal/shared"
)

// Month identifies one calendar month of a player's archived games.
type Month struct {
	Month int // 1-12
	Year  int
}

// CompareMonths orders two months by year first, then by month.
//
// Returns a negative value when a precedes b, zero when they are equal, and a
// positive value otherwise. The year comparison short-circuits: the month
// fields are only consulted when the years match.
func CompareMonths(a, b Month) int {
	if a.Year != b.Year {
		return a.Year - b.Year
	}
	return a.Month - b.Month
}

// Equal reports whether both the month and year match.
func (m Month) Equal(other Month) bool {
	return m.Month == other.Month && m.Year == other.Year
}

// String renders the month as "YYYY-MM" for logs and CLI output.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Date returns the first instant of the month in UTC.
func (m Month) Date() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// MonthFromArchiveURL extracts the month addressed by a chess.com archive
// reference, whose trailing two path segments are year then month
// (e.g. .../games/2023/01).
//
// Returns [shared.ErrMalformedReference] if either segment is missing or not a
// positive integer.
func MonthFromArchiveURL(ref string) (Month, error) {
	parts := strings.Split(strings.TrimRight(ref, "/"), "/")
	if len(parts) < 2 {
		return Month{}, fmt.Errorf("%w: %q has no year/month segments", shared.ErrMalformedReference, ref)
	}

	year, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil || year <= 0 {
		return Month{}, fmt.Errorf("%w: %q has an invalid year segment", shared.ErrMalformedReference, ref)
	}

	month, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || month <= 0 {
		return Month{}, fmt.Errorf("%w: %q has an invalid month segment", shared.ErrMalformedReference, ref)
	}

	return Month{Month: month, Year: year}, nil
}

// MostRecentMonth returns the maximum month under [CompareMonths].
//
// Returns [shared.ErrEmptyArchives] on an empty slice: once an account has any
// games at all, the source always reports at least one archive month.
func MostRecentMonth(months []Month) (Month, error) {
	if len(months) == 0 {
		return Month{}, shared.ErrEmptyArchives
	}

	latest := months[0]
	for _, m := range months[1:] {
		if CompareMonths(m, latest) > 0 {
			latest = m
		}
	}

	return latest, nil
}

// Outcome is the terminal result of a game.
type Outcome string

const (
	OutcomeWhite Outcome = "white"
	OutcomeBlack Outcome = "black"
	OutcomeDraw  Outcome = "draw"
)

// ParseOutcome converts a stored outcome string back into an [Outcome].
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeWhite, OutcomeBlack, OutcomeDraw:
		return Outcome(s), nil
	default:
		return "", fmt.Errorf("%w: unknown outcome %q", shared.ErrInvalidInput, s)
	}
}

// RawPlayer is one side's entry in the chess.com archive payload.
type RawPlayer struct {
	Username   string `json:"username"`
	ProfileURL string `json:"@id"`
	Rating     int    `json:"rating"`
	Result     string `json:"result"`
}

// RawGame is a game as returned by the chess.com games-for-month endpoint.
type RawGame struct {
	UUID        string    `json:"uuid"`
	PGN         string    `json:"pgn"`
	URL         string    `json:"url"`
	TimeControl string    `json:"time_control"`
	White       RawPlayer `json:"white"`
	Black       RawPlayer `json:"black"`
}

// Outcome derives the game result from the per-side result fields.
//
// The winning side reports the literal "win"; every other terminal state
// (draws, stalemates, timeouts with insufficient material) maps to a draw.
// White is checked first, so a payload claiming two winners resolves to white.
func (g RawGame) Outcome() Outcome {
	if g.White.Result == "win" {
		return OutcomeWhite
	}
	if g.Black.Result == "win" {
		return OutcomeBlack
	}
	return OutcomeDraw
}

// Game is a fully resolved game record: a [RawGame] plus the lichess URL its
// import returned. Created exactly once per external UUID and never mutated
// after the store accepts it.
type Game struct {
	ExternalID  string
	PGN         string
	LichessURL  string
	SourceURL   string
	TimeControl string
	White       string
	WhiteURL    string
	WhiteRating int
	Black       string
	BlackURL    string
	BlackRating int
	Outcome     Outcome
}

// NewGame builds a [Game] from the raw source payload and the destination URL
// returned by the import.
func NewGame(raw RawGame, lichessURL string) *Game {
	return &Game{
		ExternalID:  raw.UUID,
		PGN:         raw.PGN,
		LichessURL:  lichessURL,
		SourceURL:   raw.URL,
		TimeControl: raw.TimeControl,
		White:       raw.White.Username,
		WhiteURL:    raw.White.ProfileURL,
		WhiteRating: raw.White.Rating,
		Black:       raw.Black.Username,
		BlackURL:    raw.Black.ProfileURL,
		BlackRating: raw.Black.Rating,
		Outcome:     raw.Outcome(),
	}
}

// Validate checks the fields the store requires to be present.
func (g *Game) Validate() error {
	if g.ExternalID == "" {
		return fmt.Errorf("%w: game has no external ID", shared.ErrInvalidInput)
	}
	if g.PGN == "" {
		return fmt.Errorf("%w: game %s has no PGN", shared.ErrInvalidInput, g.ExternalID)
	}
	if g.LichessURL == "" {
		return fmt.Errorf("%w: game %s has no lichess URL", shared.ErrInvalidInput, g.ExternalID)
	}
	return nil
}
