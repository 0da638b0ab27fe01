package main

import (
	"fmt"
	"os"

	"dormhub/internal/cli"
	"dormhub/pkg/config"
)

func main() {
	app := cli.NewApp(config.LoadClientConfig())

	err := cli.RootCmd(app).Execute()
	_ = app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
