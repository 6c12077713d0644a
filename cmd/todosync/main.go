package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todosync/internal/config"
	"github.com/idilsaglam/todosync/internal/state"
	"github.com/idilsaglam/todosync/internal/store/rest"
	"github.com/idilsaglam/todosync/internal/ui"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	// Flags override the environment
	apiURL := flag.String("api", cfg.APIBaseURL, "base URL of the todo service")
	userID := flag.Int64("user", cfg.UserID, "owner id of the todo collection")
	timeout := flag.Duration("timeout", cfg.Timeout, "per-request timeout")
	flag.Parse()

	client := rest.New(*apiURL, *userID, rest.WithTimeout(*timeout))
	if err := ui.Run(state.New(client)); err != nil {
		fmt.Fprintln(os.Stderr, "todosync:", err)
		os.Exit(1)
	}
}
