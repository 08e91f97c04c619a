package main

import (
	"context"
	"os"

	"github.com/pankajredekar/gormcrud/internal/cli"
)

func main() {
	ctx, cancel := cli.WithSignals(context.Background())
	err := cli.Execute(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}
