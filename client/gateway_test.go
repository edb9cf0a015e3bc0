package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewGateway(server.URL, nil, 5*time.Second, logger)
}

func TestRequestParsesJSONSuccess(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/test", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}).Methods("GET")

	g := testGateway(t, r)
	resp, err := g.Request(context.Background(), http.MethodGet, "/api/test", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.Success)
}

func TestRequestSendsBearerToken(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/my-orders", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "orders": []string{}})
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodGet, "/api/my-orders", &RequestOptions{Token: "tok-123"})
	require.NoError(t, err)
}

func TestRequestNonJSONIsProtocolError(t *testing.T) {
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>Bad Gateway</body></html>"))
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodGet, "/api/pizzas", nil)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusBadGateway, protoErr.StatusCode)
	assert.Contains(t, protoErr.Snippet, "Bad Gateway")
}

func TestRequestSnippetIsTruncated(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write(long)
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodGet, "/api/pizzas", nil)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.LessOrEqual(t, len(protoErr.Snippet), snippetLimit+3)
}

func TestRequestErrorFieldBecomesAPIError(t *testing.T) {
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Este email já está cadastrado.",
		})
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodPost, "/api/register", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Este email já está cadastrado.", apiErr.Message)
}

func TestRequestLegacyMessageField(t *testing.T) {
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Email ou senha inválidos.",
		})
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodPost, "/api/login", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email ou senha inválidos.", apiErr.Message)
}

func TestRequestEmptyBodyFailureIsGeneric(t *testing.T) {
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodPost, "/api/login", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 500", apiErr.Message)
}

func TestRequestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // nothing listens anymore

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	g := NewGateway(url, nil, time.Second, logger)

	_, err := g.Request(context.Background(), http.MethodGet, "/api/test", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, netErr.URL, "/api/test")
}

func TestRequestTimeoutIsNetworkError(t *testing.T) {
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	g := NewGateway(server.URL, nil, 20*time.Millisecond, logger)

	_, err := g.Request(context.Background(), http.MethodGet, "/api/test", nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestRequestMakesExactlyOneCall(t *testing.T) {
	calls := 0
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodGet, "/api/test", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "no automatic retry")
}

func TestRequestHeaderOverride(t *testing.T) {
	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "text/plain", req.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	g := testGateway(t, r)
	_, err := g.Request(context.Background(), http.MethodGet, "/api/test", &RequestOptions{
		Headers: map[string]string{"Content-Type": "text/plain"},
	})
	require.NoError(t, err)
}
