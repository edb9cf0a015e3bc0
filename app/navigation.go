package app

// Screen is the top-level view: the auth forms or the main app.
type Screen string

const (
	ScreenAuth Screen = "auth"
	ScreenMain Screen = "main"
)

// Section is the active tab inside the main app. Values match the section
// ids the storefront has always used.
type Section string

const (
	SectionOrders   Section = "meus-pedidos"
	SectionHistory  Section = "meu-historico"
	SectionNewOrder Section = "fazer-pedido"
)

func validSection(s Section) bool {
	switch s {
	case SectionOrders, SectionHistory, SectionNewOrder:
		return true
	}
	return false
}
