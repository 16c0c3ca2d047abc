package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/letshang/internal/app"
	"github.com/dmitrijs2005/letshang/internal/buildinfo"
	"github.com/dmitrijs2005/letshang/internal/config"
	"github.com/dmitrijs2005/letshang/internal/flagx"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.New(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	route := ""
	if pos := flagx.Positional(os.Args[1:], config.ValueFlags); len(pos) > 0 {
		route = pos[0]
	}

	if err := a.Run(ctx, route, os.Stdin, os.Stdout); err != nil {
		log.Printf("%v", err)
	}
}
