package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olivoil/gesturenav/internal/app"
)

func main() {
	var opts app.Options
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--version" || arg == "-v" || arg == "version":
			fmt.Printf("%s %s\n", app.AppName, app.AppVersion)
			return
		case arg == "--help" || arg == "-h" || arg == "help":
			fmt.Printf("%s %s\n\n", app.AppName, app.AppVersion)
			fmt.Println("Drive a terminal UI with gestures from a motion-sensing publisher.")
			fmt.Println("\nUsage: gesturenav [--config path]")
			return
		case arg == "--config" || arg == "-c":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --config needs a path")
				os.Exit(2)
			}
			i++
			opts.ConfigPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "error: unknown argument %q\n", arg)
			os.Exit(2)
		}
	}

	if err := app.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
