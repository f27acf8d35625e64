// Garden opens the greeting garden in a window.
//
//	go run ./demos/garden                      # default window
//	go run ./demos/garden run -c garden.yaml   # with a config file
//	go run ./demos/garden compose rose --sizes 390x844,1440x900
//	go run ./demos/garden timeline main > main.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
