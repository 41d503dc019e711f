package http

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestServerShutdownStopsStart(t *testing.T) {
	for _, delay := range []time.Duration{0, 50 * time.Millisecond} {
		srv := NewServer(zerolog.Nop())
		done := make(chan error, 1)
		go func() { done <- srv.Start("127.0.0.1:0") }()
		time.Sleep(delay)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			cancel()
			t.Fatalf("delay %s: не ожидали ошибку Shutdown: %v", delay, err)
		}
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, http.ErrServerClosed) {
				t.Fatalf("delay %s: ожидали http.ErrServerClosed, получили %v", delay, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("delay %s: Start продолжает работать после Shutdown", delay)
		}
	}
}

func TestServerStartInvalidAddr(t *testing.T) {
	if err := NewServer(zerolog.Nop()).Start("127.0.0.1:-1"); err == nil {
		t.Fatal("ожидали ошибку для недопустимого адреса")
	}
}
