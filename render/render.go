package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/delgatito/pizzaria-app/models"
	"github.com/delgatito/pizzaria-app/money"
)

// Pure projections from API data to display text. Nothing here fetches or
// mutates anything.

const (
	EmptyActive  = "Você não tem pedidos ativos. Que tal fazer seu primeiro pedido?"
	EmptyHistory = "Você não tem pedidos no histórico. Seus pedidos entregues aparecerão aqui."
)

var statusLabels = map[models.OrderStatus]string{
	models.StatusPendente:    "Pendente",
	models.StatusPreparando:  "Preparando",
	models.StatusSaiuEntrega: "Saiu p/ Entrega",
	models.StatusEntregue:    "Entregue",
}

// StatusLabel maps a status to its display text. Unknown statuses echo the
// raw value so new backend states still render.
func StatusLabel(status models.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// FormatDate renders a timestamp the way the storefront always has:
// dd/mm/yyyy hh:mm.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// Card is one display-ready order block.
type Card struct {
	Title   string
	Status  string
	Created string
	Updated string
	Items   []string
	Total   string
}

// itemLine resolves one order item against the catalog index. Items that
// arrived as bare name strings carry no price; when the name matches a
// catalog ID the canonical name and price fill in, otherwise the raw value
// shows as-is.
func itemLine(item models.OrderItem, index map[string]models.Pizza) string {
	name, price := item.Name, item.Price
	if price == 0 {
		if pizza, ok := index[item.Name]; ok {
			name, price = pizza.Name, pizza.Price
		}
	}
	return fmt.Sprintf("• %s (%s)", name, price.Format())
}

// OrderCard projects a live order.
func OrderCard(order models.Order, index map[string]models.Pizza) Card {
	card := Card{
		Title:   fmt.Sprintf("Pedido #%d", order.ID),
		Status:  StatusLabel(order.Status),
		Created: FormatDate(order.CreatedAt.Time),
		Total:   order.Total.Format(),
	}
	if !order.UpdatedAt.IsZero() && !order.UpdatedAt.Equal(order.CreatedAt.Time) {
		card.Updated = FormatDate(order.UpdatedAt.Time)
	}
	for _, item := range order.Items {
		card.Items = append(card.Items, itemLine(item, index))
	}
	return card
}

// HistoryCard projects a completed order, titled by the live order it was
// archived from.
func HistoryCard(order models.HistoryOrder, index map[string]models.Pizza) Card {
	card := OrderCard(order.Order, index)
	card.Title = fmt.Sprintf("Pedido #%d", order.OriginalOrderID)
	if !order.CompletedAt.IsZero() {
		card.Updated = FormatDate(order.CompletedAt.Time)
	}
	return card
}

func (c Card) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s\n", c.Title, c.Status)
	fmt.Fprintf(&b, "  Data: %s\n", c.Created)
	if c.Updated != "" {
		fmt.Fprintf(&b, "  Atualizado: %s\n", c.Updated)
	}
	for _, item := range c.Items {
		fmt.Fprintf(&b, "  %s\n", item)
	}
	fmt.Fprintf(&b, "  Total: %s", c.Total)
	return b.String()
}

// Orders renders the active list, or the empty-state placeholder.
func Orders(orders []models.Order, index map[string]models.Pizza) string {
	if len(orders) == 0 {
		return EmptyActive
	}
	cards := make([]string, 0, len(orders))
	for _, order := range orders {
		cards = append(cards, OrderCard(order, index).String())
	}
	return strings.Join(cards, "\n\n")
}

// History renders the completed list, or the empty-state placeholder.
func History(orders []models.HistoryOrder, index map[string]models.Pizza) string {
	if len(orders) == 0 {
		return EmptyHistory
	}
	cards := make([]string, 0, len(orders))
	for _, order := range orders {
		cards = append(cards, HistoryCard(order, index).String())
	}
	return strings.Join(cards, "\n\n")
}

// Menu renders the catalog as a selectable list.
func Menu(catalog []models.Pizza) string {
	var b strings.Builder
	for _, pizza := range catalog {
		fmt.Fprintf(&b, "[%s] %s — %s\n", pizza.ID, pizza.Name, pizza.Price.Format())
		if pizza.Description != "" {
			fmt.Fprintf(&b, "      %s\n", pizza.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Summary renders the current draft lines and total.
func Summary(lines []models.OrderItem, total money.Centavos) string {
	if len(lines) == 0 {
		return "Nenhuma pizza selecionada."
	}
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "%s  %s\n", line.Name, line.Price.Format())
	}
	fmt.Fprintf(&b, "Total: %s", total.Format())
	return b.String()
}
