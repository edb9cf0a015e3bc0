package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/delgatito/pizzaria-app/app"
	"github.com/delgatito/pizzaria-app/client"
	"github.com/delgatito/pizzaria-app/config"
	"github.com/delgatito/pizzaria-app/render"
	"github.com/delgatito/pizzaria-app/services"
	"github.com/delgatito/pizzaria-app/storage"
	"github.com/delgatito/pizzaria-app/utils"
)

func main() {
	cliApp := &cli.App{
		Name:  "pizzaria",
		Usage: "cliente de pedidos da Pizzaria Del Gatito",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "backend base URL (overrides PIZZARIA_API_URL)"},
			&cli.DurationFlag{Name: "timeout", Usage: "request timeout (overrides PIZZARIA_TIMEOUT)"},
			&cli.StringFlag{Name: "db", Usage: "session database path (overrides PIZZARIA_DB_PATH)"},
			&cli.BoolFlag{Name: "debug", Usage: "enable request tracing"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// consoleNotifier prints the transient notifications the components emit.
type consoleNotifier struct{}

func (consoleNotifier) Notify(level, message string) {
	fmt.Printf("[%s] %s\n", strings.ToUpper(level), message)
}

func run(c *cli.Context) error {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := c.String("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v := c.Duration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := c.String("db"); v != "" {
		cfg.DBPath = v
	}
	if c.Bool("debug") || cfg.Debug {
		utils.SetDebug()
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	api := client.NewGateway(cfg.APIURL, nil, cfg.Timeout, utils.InfoLogger)
	a := app.New(api, store, consoleNotifier{}, utils.InfoLogger)

	ctx := context.Background()
	a.Start(ctx)

	return loop(ctx, a)
}

// loop reads commands from stdin and translates them into app operations,
// printing whatever the active screen shows afterwards.
func loop(ctx context.Context, a *app.App) error {
	scanner := bufio.NewScanner(os.Stdin)
	printState(a)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "sair", "quit", "exit":
			return nil

		case "ajuda", "help":
			printHelp(a)

		case "login":
			if len(args) != 2 {
				fmt.Println("uso: login <email> <senha>")
				continue
			}
			_ = a.Login(ctx, args[0], args[1])
			printState(a)

		case "cadastro":
			_ = a.Register(ctx, promptRegistration(scanner))

		case "logout":
			a.Logout()

		case "pedidos":
			if a.ShowSection(ctx, app.SectionOrders) == nil {
				fmt.Println(render.Orders(a.Feed().Active(), a.Index()))
			}

		case "historico":
			if a.ShowSection(ctx, app.SectionHistory) == nil {
				fmt.Println(render.History(a.Feed().History(), a.Index()))
			}

		case "fazer":
			if a.ShowSection(ctx, app.SectionNewOrder) == nil {
				fmt.Println(render.Menu(a.Catalog()))
				fmt.Println("\nmarque pizzas com: marcar <id>")
			}

		case "marcar":
			if len(args) != 1 {
				fmt.Println("uso: marcar <id>")
				continue
			}
			selected, err := a.ToggleByID(args[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			if selected {
				fmt.Printf("%s adicionada ao pedido\n", args[0])
			} else {
				fmt.Printf("%s removida do pedido\n", args[0])
			}
			summary := a.Builder().Summary()
			fmt.Println(render.Summary(summary.Lines, summary.Total))

		case "resumo":
			summary := a.Builder().Summary()
			fmt.Println(render.Summary(summary.Lines, summary.Total))

		case "enviar":
			if a.SubmitOrder(ctx) == nil {
				fmt.Println(render.Orders(a.Feed().Active(), a.Index()))
			}

		case "perfil":
			if user, err := a.Profile(ctx); err == nil {
				fmt.Printf("%s\n%s\n%s\n%s\n", user.Name, user.Email, user.Phone, user.Address)
			} else {
				fmt.Println("não logado")
			}

		default:
			fmt.Printf("comando desconhecido: %s (tente 'ajuda')\n", cmd)
		}
	}
}

func printState(a *app.App) {
	if a.Screen() == app.ScreenAuth {
		fmt.Println("Bem-vindo à Pizzaria Del Gatito! Use 'login <email> <senha>' ou 'cadastro'.")
		return
	}
	if user := a.Session().CurrentUser(); user != nil {
		fmt.Printf("Olá, %s! Comandos: pedidos, historico, fazer, logout, ajuda.\n", user.Name)
	}
}

func printHelp(a *app.App) {
	if a.Screen() == app.ScreenAuth {
		fmt.Println("login <email> <senha>  entrar na sua conta")
		fmt.Println("cadastro               criar uma conta nova")
		fmt.Println("sair                   fechar o cliente")
		return
	}
	fmt.Println("pedidos      seus pedidos ativos")
	fmt.Println("historico    pedidos já entregues")
	fmt.Println("fazer        montar um novo pedido")
	fmt.Println("marcar <id>  marcar/desmarcar uma pizza")
	fmt.Println("resumo       resumo do pedido atual")
	fmt.Println("enviar       enviar o pedido")
	fmt.Println("perfil       seus dados")
	fmt.Println("logout       sair da conta")
	fmt.Println("sair         fechar o cliente")
}

func promptRegistration(scanner *bufio.Scanner) services.RegisterInput {
	prompt := func(label string) string {
		fmt.Printf("%s: ", label)
		if !scanner.Scan() {
			return ""
		}
		return strings.TrimSpace(scanner.Text())
	}

	return services.RegisterInput{
		Name:            prompt("Nome"),
		Email:           prompt("Email"),
		Phone:           prompt("Telefone"),
		Address:         prompt("Endereço"),
		Password:        prompt("Senha"),
		ConfirmPassword: prompt("Confirme a senha"),
	}
}
