package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/receiptkeeper/internal/admin"
	"github.com/dmitrijs2005/receiptkeeper/internal/flagx"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := admin.NewApp(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), flagx.Command(os.Args[1:])); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
