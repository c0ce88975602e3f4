package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/accountdesk/internal/useradmin"
)

func main() {

	ctx := context.Background()
	app := &useradmin.App{Out: os.Stdout}

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
