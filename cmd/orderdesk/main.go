package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"orderdesk/config"
	"orderdesk/internal/app"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := app.NewConsoleView(os.Stdout, false)

	application, cleanup, err := app.Bootstrap(ctx, &cfg, view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// graceful shutdown по сигналу
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	// Команды пользователя читаются отдельно и выполняются циклом событий.
	go readCommands(application, view, cancel)

	printHelp()
	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "run: %v", err)
	}
}

func printHelp() {
	fmt.Println("команды:")
	fmt.Println("  fetch [отдел,отдел...] — выборка заказов")
	fmt.Println("  show <поставщик>       — предпросмотр документа")
	fmt.Println("  send <поставщик>       — отправка письма")
	fmt.Println("  account <ключ>         — сменить отправителя")
	fmt.Println("  quit                   — выход")
}

// readCommands разбирает stdin и передает операции в цикл событий.
// Stdin читается только здесь: пока представление ждет ответа на
// подтверждение, строка уходит ему, а не разбирается как команда.
func readCommands(application *app.App, view *app.ConsoleView, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if view.AwaitingReply() {
			view.Reply(line)
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		verb, arg := line, ""
		if i := strings.IndexByte(line, ' '); i > 0 {
			verb, arg = line[:i], strings.TrimSpace(line[i+1:])
		}

		switch verb {
		case "fetch":
			var departments []string
			for _, d := range strings.Split(arg, ",") {
				if d = strings.TrimSpace(d); d != "" {
					departments = append(departments, d)
				}
			}
			application.Commands <- func() { application.Controller.StartFetch(departments) }

		case "show":
			supplier := arg
			application.Commands <- func() { application.Controller.SelectSupplier(supplier) }

		case "send":
			supplier := arg
			application.Commands <- func() { application.Controller.SendMail(supplier) }

		case "account":
			key := arg
			application.Commands <- func() { application.Controller.SetAccount(key) }

		case "quit", "exit":
			cancel()
			return

		default:
			fmt.Printf("неизвестная команда: %s\n", verb)
			printHelp()
		}
	}
	cancel()
}
