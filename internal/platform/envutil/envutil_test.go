package envutil

import (
	"testing"
	"time"
)

func TestBool(t *testing.T) {
	t.Setenv("ASPIRE_FLAG", "off")
	if Bool("ASPIRE_FLAG", true) {
		t.Fatalf("expected false for off")
	}
	t.Setenv("ASPIRE_FLAG", "maybe")
	if !Bool("ASPIRE_FLAG", true) {
		t.Fatalf("expected default for unparseable value")
	}
}

func TestIntAndSeconds(t *testing.T) {
	t.Setenv("ASPIRE_N", "x")
	if got := Int("ASPIRE_N", 7); got != 7 {
		t.Fatalf("Int: got %d want 7", got)
	}
	t.Setenv("ASPIRE_TIMEOUT", "15")
	if got := Seconds("ASPIRE_TIMEOUT", time.Minute); got != 15*time.Second {
		t.Fatalf("Seconds: got %s", got)
	}
	t.Setenv("ASPIRE_TIMEOUT", "-1")
	if got := Seconds("ASPIRE_TIMEOUT", time.Minute); got != time.Minute {
		t.Fatalf("Seconds fallback: got %s", got)
	}
}
