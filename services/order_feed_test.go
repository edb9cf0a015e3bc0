package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeOrderPayload() map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"orders": []map[string]interface{}{{
			"id": 1, "items": []map[string]interface{}{{"name": "Margherita", "price": 25.0}},
			"total": 25.0, "status": "preparando",
			"createdAt": "2026-08-30T10:00:00", "updatedAt": "2026-08-30T10:05:00",
		}},
	}
}

func historyOrderPayload() map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"orders": []map[string]interface{}{{
			"id": 40, "originalOrderId": 12,
			"items": []map[string]interface{}{{"name": "Pepperoni", "price": 30.0}},
			"total": 30.0, "status": "entregue",
			"createdAt": "2026-08-01T19:00:00", "updatedAt": "2026-08-01T20:00:00",
			"completedAt": "2026-08-01T20:00:00",
		}},
	}
}

func TestRefreshBothLists(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/my-orders", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusOK, activeOrderPayload())
	})
	r.HandleFunc("/api/my-history", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusOK, historyOrderPayload())
	})

	api, _ := stubBackend(t, r)
	feed := NewOrderFeed(api, staticToken("tok"), quietLogger())

	errs := feed.RefreshAll(context.Background())
	assert.Empty(t, errs)
	require.Len(t, feed.Active(), 1)
	require.Len(t, feed.History(), 1)
	assert.Equal(t, int64(12), feed.History()[0].OriginalOrderID)
}

func TestOneListFailingDoesNotBlockTheOther(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/my-orders", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false, "error": "Erro ao carregar pedidos ativos.",
		})
	})
	r.HandleFunc("/api/my-history", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusOK, historyOrderPayload())
	})

	api, _ := stubBackend(t, r)
	feed := NewOrderFeed(api, staticToken("tok"), quietLogger())

	errs := feed.RefreshAll(context.Background())
	assert.Len(t, errs, 1)
	assert.Empty(t, feed.Active())
	require.Len(t, feed.History(), 1, "history loads despite the active list failing")
}

func TestFailedRefreshKeepsPreviousData(t *testing.T) {
	failing := false
	r := mux.NewRouter()
	r.HandleFunc("/api/my-orders", func(w http.ResponseWriter, req *http.Request) {
		if failing {
			respondJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "error": "boom"})
			return
		}
		respondJSON(w, http.StatusOK, activeOrderPayload())
	})

	api, _ := stubBackend(t, r)
	feed := NewOrderFeed(api, staticToken("tok"), quietLogger())
	ctx := context.Background()

	require.NoError(t, feed.RefreshActive(ctx))
	require.Len(t, feed.Active(), 1)

	failing = true
	require.Error(t, feed.RefreshActive(ctx))
	assert.Len(t, feed.Active(), 1, "failed load must not clear loaded data")
}

func TestResetDropsBothLists(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/my-orders", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusOK, activeOrderPayload())
	})
	r.HandleFunc("/api/my-history", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusOK, historyOrderPayload())
	})

	api, _ := stubBackend(t, r)
	feed := NewOrderFeed(api, staticToken("tok"), quietLogger())

	feed.RefreshAll(context.Background())
	feed.Reset()
	assert.Empty(t, feed.Active())
	assert.Empty(t, feed.History())
}
