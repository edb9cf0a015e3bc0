package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/models"
	"github.com/delgatito/pizzaria-app/services"
	"github.com/delgatito/pizzaria-app/storage"
)

// App wires the components together and tracks which screen and section are
// active. The front end translates user input into these methods and renders
// whatever state they leave behind; it holds no state of its own.
type App struct {
	api      *client.Gateway
	session  *services.SessionService
	menu     *services.MenuService
	builder  *services.OrderBuilder
	feed     *services.OrderFeed
	notifier services.Notifier
	logger   *logrus.Logger

	screen  Screen
	section Section
	catalog []models.Pizza
	index   map[string]models.Pizza
}

func New(api *client.Gateway, store *storage.SessionStore, notifier services.Notifier, logger *logrus.Logger) *App {
	session := services.NewSessionService(api, store, logger)
	a := &App{
		api:      api,
		session:  session,
		menu:     services.NewMenuService(api, notifier, logger),
		builder:  services.NewOrderBuilder(api, session, logger),
		feed:     services.NewOrderFeed(api, session, logger),
		notifier: notifier,
		logger:   logger,
		screen:   ScreenAuth,
		section:  SectionOrders,
	}

	// A successful submission refreshes the lists and lands on "meus-pedidos",
	// mirroring the storefront flow.
	a.builder.OnSubmitted = func(ctx context.Context) {
		for _, err := range a.feed.RefreshAll(ctx) {
			a.notifyError(err)
		}
		a.section = SectionOrders
	}
	return a
}

// Start runs the startup flow: connectivity probe, then stored-token
// verification routing to the auth screen or the main app.
func (a *App) Start(ctx context.Context) {
	if err := a.api.Ping(ctx); err != nil {
		a.notifyError(err)
	} else {
		a.logger.Info("backend reachable")
	}

	user, err := a.session.VerifyToken(ctx)
	switch {
	case errors.Is(err, services.ErrNoSession):
		a.screen = ScreenAuth
	case err != nil:
		a.notifyError(err)
		a.notifier.Notify(services.NotifyError, "Sessão inválida ou expirada. Faça login novamente.")
		a.screen = ScreenAuth
	default:
		a.enterMain(ctx, user)
	}
}

func (a *App) enterMain(ctx context.Context, user *models.User) {
	if user.IsStaff() {
		a.notifier.Notify(services.NotifyInfo, "Conta administrativa: use o painel admin para gerenciar pedidos.")
	}

	a.screen = ScreenMain
	a.catalog = a.menu.LoadMenu(ctx)
	a.index = models.CatalogIndex(a.catalog)
	a.builder.Clear()

	for _, err := range a.feed.RefreshAll(ctx) {
		a.notifyError(err)
	}
	a.section = SectionOrders
}

func (a *App) Login(ctx context.Context, email, password string) error {
	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		a.notifyError(err)
		return err
	}

	a.notifier.Notify(services.NotifySuccess, "Login realizado com sucesso!")
	a.enterMain(ctx, user)
	return nil
}

func (a *App) Register(ctx context.Context, in services.RegisterInput) error {
	if err := a.session.Register(ctx, in); err != nil {
		a.notifyError(err)
		return err
	}

	// Registration does not log in; the user signs in with the new account.
	a.notifier.Notify(services.NotifySuccess, "Cadastro realizado com sucesso! Faça login.")
	a.screen = ScreenAuth
	return nil
}

func (a *App) Logout() {
	a.resetToAuth()
	a.notifier.Notify(services.NotifyInfo, "Logout realizado com sucesso!")
}

// resetToAuth drops the session, caches and draft and lands on the auth
// screen. Shared by explicit logout and forced expiry.
func (a *App) resetToAuth() {
	a.session.Logout()
	a.feed.Reset()
	a.builder.Clear()
	a.catalog = nil
	a.index = nil
	a.screen = ScreenAuth
}

// ShowSection switches tabs inside the main app and triggers the matching
// refresh. Entering the order form always starts from an empty draft.
func (a *App) ShowSection(ctx context.Context, section Section) error {
	if a.screen != ScreenMain {
		return errors.New("not logged in")
	}
	if !validSection(section) {
		return errors.New("unknown section: " + string(section))
	}

	a.section = section
	switch section {
	case SectionOrders:
		if err := a.feed.RefreshActive(ctx); err != nil {
			a.notifyError(err)
		}
	case SectionHistory:
		if err := a.feed.RefreshHistory(ctx); err != nil {
			a.notifyError(err)
		}
	case SectionNewOrder:
		a.builder.Clear()
	}
	return nil
}

// ToggleByID flips the selection state of a catalog item.
func (a *App) ToggleByID(id string) (bool, error) {
	pizza, ok := a.index[id]
	if !ok {
		return false, errors.New("pizza não encontrada: " + id)
	}
	return a.builder.Toggle(pizza), nil
}

// Profile re-reads the account data from the backend, falling back to the
// cached record when the call fails.
func (a *App) Profile(ctx context.Context) (*models.User, error) {
	token := a.session.Token()
	if token == "" {
		return nil, services.ErrNoSession
	}
	user, err := a.api.Profile(ctx, token)
	if err != nil {
		a.notifyError(err)
		if cached := a.session.CurrentUser(); cached != nil {
			return cached, nil
		}
		return nil, err
	}
	return user, nil
}

// SubmitOrder sends the draft and reports the outcome as a notification.
func (a *App) SubmitOrder(ctx context.Context) error {
	if err := a.builder.Submit(ctx); err != nil {
		a.notifyError(err)
		return err
	}
	a.notifier.Notify(services.NotifySuccess, "Pedido criado com sucesso!")
	return nil
}

func (a *App) Screen() Screen                    { return a.screen }
func (a *App) Section() Section                  { return a.section }
func (a *App) Catalog() []models.Pizza           { return a.catalog }
func (a *App) Index() map[string]models.Pizza    { return a.index }
func (a *App) Session() *services.SessionService { return a.session }
func (a *App) Builder() *services.OrderBuilder   { return a.builder }
func (a *App) Feed() *services.OrderFeed         { return a.feed }

// notifyError converts a failure into one transient notification following
// the propagation policy: backend and validation messages verbatim,
// transport and protocol failures as generic text with details logged. A 401
// on an authenticated call means the token was revoked or expired server-side,
// so the session is dropped and the user is sent back to login.
func (a *App) notifyError(err error) {
	var netErr *client.NetworkError
	var protoErr *client.ProtocolError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &netErr):
		a.logger.Errorf("network failure: %v", netErr)
		a.notifier.Notify(services.NotifyError, "Erro de conexão com o servidor")
	case errors.As(err, &protoErr):
		a.logger.Errorf("protocol failure: %v", protoErr)
		a.notifier.Notify(services.NotifyError, "Resposta inesperada do servidor")
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized && a.session.Authenticated():
		a.logger.Warn("authenticated request rejected, dropping session")
		a.resetToAuth()
		a.notifier.Notify(services.NotifyError, "Sessão inválida ou expirada. Faça login novamente.")
	default:
		a.notifier.Notify(services.NotifyError, err.Error())
	}
}
