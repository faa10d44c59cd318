package main

import (
	"context"
	"log"
	"os"

	"github.com/jfmartinez/credvault/internal/buildinfo"
	"github.com/jfmartinez/credvault/internal/cli"
	"github.com/jfmartinez/credvault/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
