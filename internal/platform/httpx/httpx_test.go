package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), true},
		{"429", statusErr(429), true},
		{"503", fmt.Errorf("call: %w", statusErr(503)), true},
		{"400", statusErr(400), false},
		{"plain", errors.New("nope"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestBackoffDelay(t *testing.T) {
	b := Backoff{Base: time.Second, Max: 10 * time.Second}
	within := func(got, want time.Duration) bool {
		return got >= want*8/10 && got <= want*12/10
	}
	if got := b.Delay(0, nil); !within(got, time.Second) {
		t.Fatalf("attempt 0: %v", got)
	}
	if got := b.Delay(2, nil); !within(got, 4*time.Second) {
		t.Fatalf("attempt 2: %v", got)
	}
	if got := b.Delay(10, nil); !within(got, 10*time.Second) {
		t.Fatalf("expected cap, got %v", got)
	}

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "0")
	if got := b.Delay(3, resp); got != 0 {
		t.Fatalf("Retry-After 0 should not wait, got %v", got)
	}
	resp.Header.Set("Retry-After", "30")
	if got := b.Delay(0, resp); !within(got, 10*time.Second) {
		t.Fatalf("Retry-After should be capped, got %v", got)
	}
}

func TestRetryAfterHTTPDate(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", now.Add(3*time.Second).Format(http.TimeFormat))
	d, ok := retryAfter(resp, now)
	if !ok || d != 3*time.Second {
		t.Fatalf("got %v %v", d, ok)
	}
	resp.Header.Set("Retry-After", "soon")
	if _, ok := retryAfter(resp, now); ok {
		t.Fatal("expected unparsable header to be ignored")
	}
}

func TestJitterSleepBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		got := JitterSleep(time.Second)
		if got < 800*time.Millisecond || got > 1200*time.Millisecond {
			t.Fatalf("jitter out of range: %v", got)
		}
	}
	if JitterSleep(0) != 0 {
		t.Fatal("expected zero")
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}
