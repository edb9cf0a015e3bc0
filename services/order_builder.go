package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/models"
	"github.com/delgatito/pizzaria-app/money"
)

// OrderBuilder tracks the uncommitted selection of menu items. Items are
// keyed by their stable catalog ID; names are only resolved into the wire
// payload at submission time. The total is always recomputed from the
// selection, never stored on its own.
type OrderBuilder struct {
	api     *client.Gateway
	session TokenSource
	logger  *logrus.Logger

	// Called after a successful submission, used to refresh the order lists.
	OnSubmitted func(ctx context.Context)

	mu       sync.Mutex
	selected map[string]models.Pizza
	order    []string
	inFlight bool
}

func NewOrderBuilder(api *client.Gateway, session TokenSource, logger *logrus.Logger) *OrderBuilder {
	return &OrderBuilder{
		api:      api,
		session:  session,
		logger:   logger,
		selected: make(map[string]models.Pizza),
	}
}

// Toggle adds the item to the selection, or removes it when already present.
// Toggling twice restores the prior state. Returns whether the item is
// selected afterwards.
func (b *OrderBuilder) Toggle(item models.Pizza) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.selected[item.ID]; ok {
		delete(b.selected, item.ID)
		for i, id := range b.order {
			if id == item.ID {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
		return false
	}

	b.selected[item.ID] = item
	b.order = append(b.order, item.ID)
	return true
}

// Clear resets the draft, used when the order form is redisplayed.
func (b *OrderBuilder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = make(map[string]models.Pizza)
	b.order = nil
}

// OrderSummary is a pure projection of the current selection.
type OrderSummary struct {
	Lines []models.OrderItem
	Total money.Centavos
}

// Summary recomputes lines and total from the selection.
func (b *OrderBuilder) Summary() OrderSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.summaryLocked()
}

func (b *OrderBuilder) summaryLocked() OrderSummary {
	var summary OrderSummary
	for _, id := range b.order {
		item := b.selected[id]
		summary.Lines = append(summary.Lines, models.OrderItem{Name: item.Name, Price: item.Price})
		summary.Total += item.Price
	}
	return summary
}

// Empty reports whether nothing is selected.
func (b *OrderBuilder) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.selected) == 0
}

// Submit posts the composed order. An empty selection fails locally without
// touching the network, and only one submission may be outstanding at a time
// so a double press cannot create a duplicate order. The draft is cleared on
// success and left untouched on failure so the user can retry.
func (b *OrderBuilder) Submit(ctx context.Context) error {
	b.mu.Lock()
	if len(b.selected) == 0 {
		b.mu.Unlock()
		return newValidationError("empty-selection", "Por favor, selecione pelo menos uma pizza!")
	}
	if b.inFlight {
		b.mu.Unlock()
		return newValidationError("submit-in-flight", "Pedido anterior ainda está sendo enviado")
	}
	b.inFlight = true
	summary := b.summaryLocked()
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.inFlight = false
		b.mu.Unlock()
	}()

	if err := b.api.CreateOrder(ctx, b.session.Token(), summary.Lines, summary.Total); err != nil {
		return err
	}

	b.Clear()
	b.logger.Infof("order submitted: %d items, total %s", len(summary.Lines), summary.Total.Format())

	if b.OnSubmitted != nil {
		b.OnSubmitted(ctx)
	}
	return nil
}
