package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mtamaki/cloud-cost-viewer/internal/shared/types"
)

func TestFetchRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"success","rates":{"JPY":149.55,"EUR":0.92}}`)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	rate, err := repo.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 149.55 {
		t.Errorf("expected 149.55, got %v", rate)
	}
}

func TestFetchRateCachesFirstResult(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"result":"success","rates":{"JPY":150}}`)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	for i := 0; i < 3; i++ {
		rate, err := repo.FetchRate(context.Background())
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if rate != 150 {
			t.Fatalf("fetch %d: expected 150, got %v", i, rate)
		}
	}

	if hits != 1 {
		t.Errorf("expected exactly 1 upstream request, got %d", hits)
	}
}

func TestFetchRateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	if _, err := repo.FetchRate(context.Background()); !errors.Is(err, types.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateUnsuccessfulResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"error","rates":{}}`)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	if _, err := repo.FetchRate(context.Background()); !errors.Is(err, types.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateMissingJPY(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"success","rates":{"EUR":0.92}}`)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	if _, err := repo.FetchRate(context.Background()); !errors.Is(err, types.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	if _, err := repo.FetchRate(context.Background()); !errors.Is(err, types.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestFetchRateErrorsAreNotCached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"result":"success","rates":{"JPY":151.2}}`)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)
	if _, err := repo.FetchRate(context.Background()); err == nil {
		t.Fatal("expected first fetch to fail")
	}

	rate, err := repo.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if rate != 151.2 {
		t.Errorf("expected 151.2, got %v", rate)
	}
}

func TestReset(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		fmt.Fprintf(w, `{"result":"success","rates":{"JPY":%d}}`, 100+n)
	}))
	defer server.Close()

	repo := NewRateRepositoryWithEndpoint(server.URL)

	first, err := repo.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.Reset()

	second, err := repo.FetchRate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Errorf("expected a fresh fetch after Reset, got %v twice", first)
	}
	if hits != 2 {
		t.Errorf("expected 2 upstream requests, got %d", hits)
	}
}
