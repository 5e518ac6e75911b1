package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/zettel/cmd"
	"github.com/meysamhadeli/zettel/constants/lipgloss"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
		cancel()
		os.Exit(1)
	}
}
