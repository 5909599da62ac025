package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/zurustar/balloon-pump/pkg/app"
)

//go:embed assets
var embeddedAssets embed.FS

func main() {
	application := app.New(embeddedAssets)
	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
