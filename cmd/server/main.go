package main

import (
	"log/slog"
	"os"

	"github.com/taekwondodev/ledger-auth/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
