package httpclient

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newRequest(t *testing.T, url, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(body)), nil
	}
	return req
}

func TestDoSucceedsFirstTry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(WithMaxRetries(3), WithBaseDelay(time.Millisecond))
	resp, err := client.Do(newRequest(t, server.URL, "{}"))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestDoRetriesRateLimitThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	var bodies []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(
		WithMaxRetries(3),
		WithBaseDelay(time.Millisecond),
		WithHeaderParser(ParseRateLimitHeaders),
	)

	resp, err := client.Do(newRequest(t, server.URL, `{"model":"m"}`))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}

	// Retries must replay the original body via GetBody.
	for i, body := range bodies {
		if body != `{"model":"m"}` {
			t.Errorf("attempt %d body = %q", i, body)
		}
	}
}

func TestDoNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := New(WithMaxRetries(3), WithBaseDelay(time.Millisecond))
	resp, err := client.Do(newRequest(t, server.URL, "{}"))
	if err == nil {
		t.Fatal("expected error for 400")
	}
	resp.Body.Close()

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}

	var retryErr *RetryableError
	if errors.As(err, &retryErr) {
		t.Error("400 should not produce a RetryableError")
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(
		WithMaxRetries(0),
		WithBaseDelay(time.Millisecond),
		WithHeaderParser(ParseRateLimitHeaders),
	)

	resp, err := client.Do(newRequest(t, server.URL, "{}"))
	if resp != nil {
		resp.Body.Close()
	}
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	var retryErr *RetryableError
	if !errors.As(err, &retryErr) {
		t.Fatalf("expected RetryableError, got %T: %v", err, err)
	}
	if retryErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", retryErr.StatusCode)
	}
	if retryErr.RetryAfter != 7*time.Second {
		t.Errorf("retry after = %v, want 7s", retryErr.RetryAfter)
	}
}

func TestConservativeRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(WithMaxRetries(3), WithBaseDelay(time.Millisecond))

	start := time.Now()
	resp, err := client.Do(newRequest(t, server.URL, "{}"))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	// First conservative retry waits 2s.
	if elapsed := time.Since(start); elapsed < 2*time.Second {
		t.Errorf("retry fired after %v, expected at least 2s", elapsed)
	}
}

func TestDefaultRetryStrategy(t *testing.T) {
	tests := []struct {
		status int
		want   RetryStrategy
	}{
		{http.StatusTooManyRequests, SmartRetry},
		{http.StatusServiceUnavailable, SmartRetry},
		{http.StatusInternalServerError, ConservativeRetry},
		{http.StatusBadGateway, ConservativeRetry},
		{http.StatusBadRequest, NoRetry},
		{http.StatusUnauthorized, NoRetry},
		{http.StatusNotFound, NoRetry},
	}

	for _, tt := range tests {
		if got := DefaultRetryStrategy(tt.status); got != tt.want {
			t.Errorf("DefaultRetryStrategy(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestParseRateLimitHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "30")
	headers.Set("x-ratelimit-reset-tokens", "1700000000")
	headers.Set("x-ratelimit-remaining-requests", "12")
	headers.Set("x-ratelimit-remaining-tokens", "3400")

	info := ParseRateLimitHeaders(headers)

	if info.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v", info.RetryAfter)
	}
	if info.ResetTime != 1700000000 {
		t.Errorf("ResetTime = %d", info.ResetTime)
	}
	if info.RequestsRemaining != 12 {
		t.Errorf("RequestsRemaining = %d", info.RequestsRemaining)
	}
	if info.TokensRemaining != 3400 {
		t.Errorf("TokensRemaining = %d", info.TokensRemaining)
	}
}

func TestParseRateLimitHeadersEmpty(t *testing.T) {
	info := ParseRateLimitHeaders(http.Header{})
	if info != (RateLimitInfo{}) {
		t.Errorf("expected zero info, got %+v", info)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &RetryableError{StatusCode: 429, Message: "limited", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the inner error")
	}
	if !strings.Contains(err.Error(), "limited") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCalculateDelayPrefersRetryAfter(t *testing.T) {
	client := New(WithBaseDelay(time.Second))

	delay := client.calculateDelay(SmartRetry, 0, RateLimitInfo{RetryAfter: 5 * time.Second})
	if delay != 5*time.Second {
		t.Errorf("delay = %v, want 5s", delay)
	}

	// No hints: exponential backoff with jitter on top of the base delay.
	delay = client.calculateDelay(SmartRetry, 1, RateLimitInfo{})
	if delay < 2*time.Second || delay > 3*time.Second {
		t.Errorf("delay = %v, want ~2.2s", delay)
	}

	if delay := client.calculateDelay(ConservativeRetry, 2, RateLimitInfo{}); delay != 0 {
		t.Errorf("conservative attempt 2 delay = %v, want 0", delay)
	}
}
