package client

import (
	"context"
	"net/http"

	"github.com/delgatito/pizzaria-app/models"
	"github.com/delgatito/pizzaria-app/money"
)

// Typed wrappers over the gateway, one per backend endpoint. Each converts a
// 2xx-but-unsuccessful envelope into an *APIError carrying the backend's own
// message, so callers deal with a single failure shape.

// Ping hits the unauthenticated liveness endpoint. The backend answers with
// a greeting payload that carries no success flag, so any 2xx JSON reply
// counts as reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	_, err := g.Request(ctx, http.MethodGet, "/api/test", nil)
	return err
}

// LoginResult is the credential pair a successful login returns.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := g.Request(ctx, http.MethodPost, "/api/login", &RequestOptions{
		Body: map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, newAPIError(resp.StatusCode, resp.FailureMessage())
	}

	var result LoginResult
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterRequest is the profile submitted to /api/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (g *Gateway) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := g.Request(ctx, http.MethodPost, "/api/register", &RequestOptions{Body: req})
	if err != nil {
		return err
	}
	if !resp.Success {
		return newAPIError(resp.StatusCode, resp.FailureMessage())
	}
	return nil
}

func (g *Gateway) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	resp, err := g.Request(ctx, http.MethodPost, "/api/verify-token", &RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, newAPIError(resp.StatusCode, resp.FailureMessage())
	}

	var result struct {
		User models.User `json:"user"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (g *Gateway) Profile(ctx context.Context, token string) (*models.User, error) {
	resp, err := g.Request(ctx, http.MethodGet, "/api/profile", &RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, newAPIError(resp.StatusCode, resp.FailureMessage())
	}

	var result struct {
		User models.User `json:"user"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (g *Gateway) Pizzas(ctx context.Context) ([]models.Pizza, error) {
	resp, err := g.Request(ctx, http.MethodGet, "/api/pizzas", nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, newAPIError(resp.StatusCode, resp.FailureMessage())
	}

	var result struct {
		Pizzas []models.Pizza `json:"pizzas"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result.Pizzas, nil
}

func (g *Gateway) MyOrders(ctx context.Context, token string) ([]models.Order, error) {
	resp, err := g.Request(ctx, http.MethodGet, "/api/my-orders", &RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, newAPIError(resp.StatusCode, resp.FailureMessage())
	}

	var result struct {
		Orders []models.Order `json:"orders"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

func (g *Gateway) MyHistory(ctx context.Context, token string) ([]models.HistoryOrder, error) {
	resp, err := g.Request(ctx, http.MethodGet, "/api/my-history", &RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, newAPIError(resp.StatusCode, resp.FailureMessage())
	}

	var result struct {
		Orders []models.HistoryOrder `json:"orders"`
	}
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result.Orders, nil
}

// CreateOrder submits a composed order. Items carry the name and price
// snapshot resolved at submission time; Total is the client-side sum the
// backend cross-checks.
func (g *Gateway) CreateOrder(ctx context.Context, token string, items []models.OrderItem, total money.Centavos) error {
	resp, err := g.Request(ctx, http.MethodPost, "/api/orders", &RequestOptions{
		Token: token,
		Body: map[string]interface{}{
			"items": items,
			"total": total,
		},
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return newAPIError(resp.StatusCode, resp.FailureMessage())
	}
	return nil
}
