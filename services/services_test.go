package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/storage"
)

// Shared fixtures for the service tests: a counting stub backend, a quiet
// logger, a notification spy, and a throwaway session store.

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newStore(t *testing.T) *storage.SessionStore {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	return store
}

// stubBackend serves handler and counts every request that reaches it, so
// tests can assert a call never went out.
func stubBackend(t *testing.T, handler http.Handler) (*client.Gateway, *int) {
	t.Helper()
	calls := new(int)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if handler != nil {
			handler.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return client.NewGateway(server.URL, nil, 5*time.Second, quietLogger()), calls
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type spyNotifier struct {
	events []spyEvent
}

type spyEvent struct {
	Level   string
	Message string
}

func (n *spyNotifier) Notify(level, message string) {
	n.events = append(n.events, spyEvent{Level: level, Message: message})
}

func (n *spyNotifier) count(level string) int {
	total := 0
	for _, e := range n.events {
		if e.Level == level {
			total++
		}
	}
	return total
}

type staticToken string

func (s staticToken) Token() string { return string(s) }
