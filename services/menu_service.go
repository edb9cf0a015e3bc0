package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/models"
)

const menuFallbackMessage = "Erro ao carregar lista de pizzas da API. Exibindo pizzas padrão."

// MenuService fetches the pizza catalog. Any failure — network, protocol or
// API — degrades to the built-in catalog instead of propagating, but always
// signals one warning so the substitution is observable.
type MenuService struct {
	api      *client.Gateway
	notifier Notifier
	logger   *logrus.Logger
}

func NewMenuService(api *client.Gateway, notifier Notifier, logger *logrus.Logger) *MenuService {
	return &MenuService{api: api, notifier: notifier, logger: logger}
}

// LoadMenu returns the backend catalog, or the fallback catalog when the
// fetch fails. Every call is independent; nothing is cached here.
func (m *MenuService) LoadMenu(ctx context.Context) []models.Pizza {
	pizzas, err := m.api.Pizzas(ctx)
	if err != nil {
		m.logger.Warnf("catalog fetch failed, using fallback: %v", err)
		m.notifier.Notify(NotifyWarning, menuFallbackMessage)
		return models.FallbackCatalog()
	}
	if len(pizzas) == 0 {
		m.logger.Warn("catalog fetch returned no pizzas, using fallback")
		m.notifier.Notify(NotifyWarning, menuFallbackMessage)
		return models.FallbackCatalog()
	}
	return pizzas
}
