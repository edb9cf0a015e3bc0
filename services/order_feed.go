package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/models"
)

// OrderFeed holds the user's active and historical order lists. The two
// lists refresh independently: a failed fetch reports its error and leaves
// the previously loaded data in place, and never touches the other list.
type OrderFeed struct {
	api     *client.Gateway
	session TokenSource
	logger  *logrus.Logger

	mu      sync.Mutex
	active  []models.Order
	history []models.HistoryOrder
}

func NewOrderFeed(api *client.Gateway, session TokenSource, logger *logrus.Logger) *OrderFeed {
	return &OrderFeed{api: api, session: session, logger: logger}
}

func (f *OrderFeed) RefreshActive(ctx context.Context) error {
	orders, err := f.api.MyOrders(ctx, f.session.Token())
	if err != nil {
		f.logger.Warnf("failed to refresh active orders: %v", err)
		return err
	}

	f.mu.Lock()
	f.active = orders
	f.mu.Unlock()
	return nil
}

func (f *OrderFeed) RefreshHistory(ctx context.Context) error {
	orders, err := f.api.MyHistory(ctx, f.session.Token())
	if err != nil {
		f.logger.Warnf("failed to refresh order history: %v", err)
		return err
	}

	f.mu.Lock()
	f.history = orders
	f.mu.Unlock()
	return nil
}

// RefreshAll issues both fetches unconditionally, so one failing cannot
// block the other, and returns whatever errors occurred.
func (f *OrderFeed) RefreshAll(ctx context.Context) []error {
	var errs []error
	if err := f.RefreshActive(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := f.RefreshHistory(ctx); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (f *OrderFeed) Active() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, len(f.active))
	copy(out, f.active)
	return out
}

func (f *OrderFeed) History() []models.HistoryOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.HistoryOrder, len(f.history))
	copy(out, f.history)
	return out
}

// Reset drops both cached lists, called on logout.
func (f *OrderFeed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = nil
	f.history = nil
}
