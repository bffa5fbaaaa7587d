package worker

import (
	"context"
	"testing"
	"time"
)

func shortContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestLimiter_PerHostBurst(t *testing.T) {
	l := NewLimiter(0.001, 2)

	for _, u := range []string{"http://a.example/x", "http://a.example/y"} {
		if err := l.Wait(shortContext(t), u); err != nil {
			t.Fatalf("expected burst of 2 to pass, got %v", err)
		}
	}
	if err := l.Wait(shortContext(t), "http://a.example/z"); err == nil {
		t.Error("expected third immediate request to be throttled")
	}
	if err := l.Wait(shortContext(t), "http://b.example/"); err != nil {
		t.Errorf("expected a different host to have its own budget, got %v", err)
	}
}

func TestLimiter_DisabledWhenRateNonPositive(t *testing.T) {
	l := NewLimiter(0, 1)
	ctx := shortContext(t)
	for i := 0; i < 50; i++ {
		if err := l.Wait(ctx, "http://a.example/"); err != nil {
			t.Fatalf("request %d throttled with limiting disabled: %v", i, err)
		}
	}
}

func TestLimiter_NilIsNoop(t *testing.T) {
	var l *Limiter
	if err := l.Wait(context.Background(), "http://a.example/"); err != nil {
		t.Errorf("nil limiter Wait returned %v", err)
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://bad"); err == nil {
		t.Error("expected error for unparseable URL")
	}
}
