package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\n"+styles.Muted.Render("Visualization cancelled by user."))
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", styles.StatusError, styles.Error.Render(err.Error()))
		os.Exit(1)
	}
}
