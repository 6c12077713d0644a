package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idilsaglam/todosync/internal/config"
	"github.com/idilsaglam/todosync/internal/server"
	"github.com/idilsaglam/todosync/internal/server/sqlite"
)

func main() {
	if err := mainInner(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func mainInner() error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	// Flags override the environment
	addrVar := flag.String("addr", cfg.Addr, "the address to listen on")
	dbVar := flag.String("db", cfg.DBPath, "path of the sqlite database")
	flag.Parse()

	slog.Info("opening database", "path", *dbVar)
	st, err := sqlite.Open(*dbVar)
	if err != nil {
		return err
	}
	defer st.Close()

	httpServer := &http.Server{
		Addr:    *addrVar,
		Handler: server.New(st, slog.Default()).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", *addrVar)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	exit := make(chan os.Signal, 1) // buffer size 1 so the notifier is not blocked
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-exit:
		slog.Info("signal caught", "sig", sig)
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}
