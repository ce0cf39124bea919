package fred

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quant_backend/internal/feature/ingest/domain"
)

func testRange() (time.Time, time.Time) {
	return time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 3, 31, 0, 0, 0, 0, time.UTC)
}

func TestNewFredSource(t *testing.T) {
	t.Parallel()

	src := NewFredSource(Config{FredAPIKey: "test-key", BaseURL: "https://fred.test"}, &http.Client{})

	if src == nil {
		t.Fatal("expected non-nil source")
	}
	if src.Provider() != "fred" {
		t.Errorf("expected provider fred, got %s", src.Provider())
	}
}

func TestFredSource_FetchSeries_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Query().Get("series_id") != "CPIAUCSL" {
			t.Errorf("expected series_id CPIAUCSL, got %s", r.URL.Query().Get("series_id"))
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("expected api_key test-key, got %s", r.URL.Query().Get("api_key"))
		}
		if r.URL.Query().Get("observation_start") != "2015-01-01" {
			t.Errorf("expected observation_start 2015-01-01, got %s", r.URL.Query().Get("observation_start"))
		}
		if r.URL.Query().Get("file_type") != "json" {
			t.Errorf("expected file_type json, got %s", r.URL.Query().Get("file_type"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 3,
			"observations": [
				{"date": "2015-01-01", "value": "234.747"},
				{"date": "2015-02-01", "value": "235.342"},
				{"date": "2015-03-01", "value": "235.976"}
			]
		}`))
	}))
	defer server.Close()

	src := NewFredSource(Config{FredAPIKey: "test-key", BaseURL: server.URL}, server.Client())

	from, to := testRange()
	records, err := src.FetchSeries(context.Background(), "CPIAUCSL", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Value != 234.747 {
		t.Errorf("expected value 234.747, got %f", records[0].Value)
	}
	if !records[1].Time.Equal(time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected time %v", records[1].Time)
	}
}

func TestFredSource_FetchSeries_MissingValuesAreSkipped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// "." は欠損値: レコードごと読み飛ばす
		_, _ = w.Write([]byte(`{
			"observations": [
				{"date": "2015-01-01", "value": "234.747"},
				{"date": "2015-02-01", "value": "."},
				{"date": "2015-03-01", "value": "235.976"}
			]
		}`))
	}))
	defer server.Close()

	src := NewFredSource(Config{FredAPIKey: "test-key", BaseURL: server.URL}, server.Client())

	from, to := testRange()
	records, err := src.FetchSeries(context.Background(), "CPIAUCSL", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Value != 235.976 {
		t.Errorf("expected value 235.976, got %f", records[1].Value)
	}
}

func TestFredSource_FetchSeries_UnknownSeries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{
			"error_code": 400,
			"error_message": "Bad Request. The series does not exist."
		}`))
	}))
	defer server.Close()

	src := NewFredSource(Config{FredAPIKey: "test-key", BaseURL: server.URL}, server.Client())

	from, to := testRange()
	_, err := src.FetchSeries(context.Background(), "NOPE", from, to)
	if !errors.Is(err, domain.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestFredSource_FetchSeries_BadAPIKeyIsTransient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{
			"error_code": 400,
			"error_message": "Bad Request. The value for variable api_key is not registered."
		}`))
	}))
	defer server.Close()

	src := NewFredSource(Config{FredAPIKey: "bad-key", BaseURL: server.URL}, server.Client())

	from, to := testRange()
	_, err := src.FetchSeries(context.Background(), "CPIAUCSL", from, to)
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFredSource_FetchSeries_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NewFredSource(Config{FredAPIKey: "test-key", BaseURL: server.URL}, server.Client())

	from, to := testRange()
	_, err := src.FetchSeries(context.Background(), "CPIAUCSL", from, to)
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFredSource_FetchSeries_MalformedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations": [`))
	}))
	defer server.Close()

	src := NewFredSource(Config{FredAPIKey: "test-key", BaseURL: server.URL}, server.Client())

	from, to := testRange()
	_, err := src.FetchSeries(context.Background(), "CPIAUCSL", from, to)
	if err == nil {
		t.Fatal("expected decode error")
	}
}
