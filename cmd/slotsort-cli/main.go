package main

import (
	"fmt"
	"os"
)

func main() {
	app := NewApp(os.Stdout)

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[Error] %s\n", err.Error())
		os.Exit(1)
	}
}
