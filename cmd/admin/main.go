package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/planit/internal/admin"
	"github.com/dmitrijs2005/planit/internal/logging"
)

func main() {
	logger, err := logging.New(os.Stderr, "warn", "text")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := admin.NewApp(os.Stdin, os.Stdout, logger)
	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, admin.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
