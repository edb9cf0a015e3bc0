package models

import "github.com/delgatito/pizzaria-app/money"

// Pizza is one catalog entry. ID is the stable key used for selection and
// lookups; Name is presentation only.
type Pizza struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       money.Centavos `json:"price"`
	Description string         `json:"description,omitempty"`
}

// FallbackCatalog is the built-in menu used when GET /api/pizzas fails. Same
// six pizzas the original storefront shipped with.
func FallbackCatalog() []Pizza {
	return []Pizza{
		{
			ID:          "margherita",
			Name:        "Margherita",
			Price:       money.FromReais(25),
			Description: "Molho de tomate, mussarela e manjericão",
		},
		{
			ID:          "pepperoni",
			Name:        "Pepperoni",
			Price:       money.FromReais(30),
			Description: "Molho de tomate, mussarela e pepperoni",
		},
		{
			ID:          "calabresa",
			Name:        "Calabresa",
			Price:       money.FromReais(23),
			Description: "Molho de tomate, mussarela, calabresa e cebola",
		},
		{
			ID:          "quatro-queijos",
			Name:        "Quatro Queijos",
			Price:       money.FromReais(32),
			Description: "Mussarela, provolone, parmesão e gorgonzola",
		},
		{
			ID:          "Hawaiana",
			Name:        "Hawaiana",
			Price:       money.FromReais(30),
			Description: "Molho de tomate, mussarela, presunto e abacaxi",
		},
		{
			ID:          "Especial-Del-Gatito",
			Name:        "Especial Del Gatito",
			Price:       money.FromReais(35),
			Description: "Molho rústico, quatro queijos, mignon, cebola caramelizada, catupiry e rúcula",
		},
	}
}

// CatalogIndex builds an ID-keyed lookup over a catalog slice.
func CatalogIndex(catalog []Pizza) map[string]Pizza {
	index := make(map[string]Pizza, len(catalog))
	for _, p := range catalog {
		index[p.ID] = p
	}
	return index
}
