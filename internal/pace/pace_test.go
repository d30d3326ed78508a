package pace

import (
	"context"
	"testing"
	"time"
)

func TestFixedDelayWaits(t *testing.T) {
	p := NewFixedDelay(20 * time.Millisecond)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Expected at least the configured delay, waited %v", elapsed)
	}
}

func TestFixedDelayZeroReturnsImmediately(t *testing.T) {
	p := NewFixedDelay(0)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Millisecond {
		t.Errorf("Expected immediate return, waited %v", elapsed)
	}
}

func TestFixedDelayCancellation(t *testing.T) {
	p := NewFixedDelay(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := p.Wait(ctx)
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Expected early return on cancel, waited %v", elapsed)
	}
}

func TestNoneNeverWaits(t *testing.T) {
	start := time.Now()
	if err := (None{}).Wait(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Millisecond {
		t.Errorf("Expected immediate return, waited %v", elapsed)
	}
}
