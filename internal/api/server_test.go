package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gemstrategy/backend/pkg/config"
	"github.com/gemstrategy/backend/pkg/logger"
)

func TestNewAppliesConfiguredTimeouts(t *testing.T) {
	cfg := &config.Config{
		Port: "8080",
		Env:  "development",
		Server: config.ServerConfig{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  90 * time.Second,
		},
	}
	log := logger.New(cfg)

	s := New(cfg, log, http.NewServeMux())

	if s.httpServer.Addr != ":8080" {
		t.Errorf("Addr = %s, want :8080", s.httpServer.Addr)
	}
	if s.httpServer.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", s.httpServer.ReadTimeout)
	}
	if s.httpServer.WriteTimeout != 2*time.Minute {
		t.Errorf("WriteTimeout = %v, want 2m", s.httpServer.WriteTimeout)
	}
	if s.httpServer.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, want 90s", s.httpServer.IdleTimeout)
	}
}
