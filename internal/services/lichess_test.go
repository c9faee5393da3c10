package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RedDocMD/cc2lc/internal/shared"
)

func TestLichessService(t *testing.T) {
	t.Run("ImportGame", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			var gotPGN string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/import" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				gotPGN = r.PostForm.Get("pgn")
				fmt.Fprint(w, `{"id": "abcdefgh", "url": "https://lichess.org/abcdefgh"}`)
			}))
			defer server.Close()

			svc := NewLichessService(server.URL, server.Client(), time.Millisecond, nil)
			url, err := svc.ImportGame(context.Background(), "1. e4 e5")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if gotPGN != "1. e4 e5" {
				t.Errorf("expected PGN in form body, got %q", gotPGN)
			}
			if url != "https://lichess.org/abcdefgh" {
				t.Errorf("unexpected import URL: %s", url)
			}
		})

		t.Run("Retries Rate Limit Until Success", func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= 2 {
					w.WriteHeader(http.StatusTooManyRequests)
					return
				}
				fmt.Fprint(w, `{"url": "https://lichess.org/retried1"}`)
			}))
			defer server.Close()

			svc := NewLichessService(server.URL, server.Client(), time.Millisecond, nil)
			url, err := svc.ImportGame(context.Background(), "1. d4 d5")
			if err != nil {
				t.Fatalf("expected eventual success, got %v", err)
			}

			if url != "https://lichess.org/retried1" {
				t.Errorf("unexpected import URL: %s", url)
			}
			if got := calls.Load(); got != 3 {
				t.Errorf("expected 3 submissions, got %d", got)
			}
		})

		t.Run("Rejection Is Not Retried", func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusBadRequest)
			}))
			defer server.Close()

			svc := NewLichessService(server.URL, server.Client(), time.Millisecond, nil)
			_, err := svc.ImportGame(context.Background(), "garbage")
			if !errors.Is(err, shared.ErrSinkRejected) {
				t.Fatalf("expected ErrSinkRejected, got %v", err)
			}

			if got := calls.Load(); got != 1 {
				t.Errorf("expected a single submission, got %d", got)
			}
		})

		t.Run("Context Cancelled During Backoff", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer server.Close()

			svc := NewLichessService(server.URL, server.Client(), time.Minute, nil)

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(10 * time.Millisecond)
				cancel()
			}()

			if _, err := svc.ImportGame(ctx, "1. e4 e5"); !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close()

			svc := NewLichessService(server.URL, nil, time.Millisecond, nil)
			if _, err := svc.ImportGame(context.Background(), "1. e4 e5"); err == nil {
				t.Error("expected error for refused connection")
			}
		})
	})

	t.Run("OAuthClient Sends Bearer Token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			fmt.Fprint(w, `{"url": "https://lichess.org/authed11"}`)
		}))
		defer server.Close()

		svc := NewLichessService(server.URL, OAuthClient("lip_secret"), time.Millisecond, nil)
		if _, err := svc.ImportGame(context.Background(), "1. e4 e5"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotAuth != "Bearer lip_secret" {
			t.Errorf("expected bearer token header, got %q", gotAuth)
		}
	})
}
