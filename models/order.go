package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/delgatito/pizzaria-app/money"
)

type OrderStatus string

// Status values the backend moves an order through, strictly forward. The
// client never transitions a status, it only displays one.
const (
	StatusPendente    OrderStatus = "pendente"
	StatusPreparando  OrderStatus = "preparando"
	StatusSaiuEntrega OrderStatus = "saiu-entrega"
	StatusEntregue    OrderStatus = "entregue"
)

// OrderItem is a price snapshot taken at order creation. Older backend
// versions stored bare name strings instead of objects, so unmarshalling
// accepts both shapes; a bare string yields a zero price to be resolved
// against the catalog at render time.
type OrderItem struct {
	Name  string         `json:"name"`
	Price money.Centavos `json:"price"`
}

func (it *OrderItem) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return errors.Wrap(err, "unmarshal order item")
		}
		it.Name = name
		it.Price = 0
		return nil
	}

	type alias OrderItem
	var a alias
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return errors.Wrap(err, "unmarshal order item")
	}
	*it = OrderItem(a)
	return nil
}

// Order is the client's read-only projection of a live backend order.
type Order struct {
	ID        int64          `json:"id"`
	Items     []OrderItem    `json:"items"`
	Total     money.Centavos `json:"total"`
	Status    OrderStatus    `json:"status"`
	CreatedAt APITime        `json:"createdAt"`
	UpdatedAt APITime        `json:"updatedAt"`
}

// HistoryOrder is an immutable completed order. OriginalOrderID points at the
// live order it was archived from.
type HistoryOrder struct {
	Order
	OriginalOrderID int64   `json:"originalOrderId"`
	CompletedAt     APITime `json:"completedAt"`
}

// APITime tolerates the backend's two timestamp dialects: RFC 3339 and the
// zone-less ISO form Flask's isoformat() emits.
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *APITime) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "unmarshal timestamp")
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return errors.Errorf("unrecognized timestamp %q", raw)
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
