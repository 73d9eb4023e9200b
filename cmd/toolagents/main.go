// Command toolagents summarizes CSV files and runs the EDA and news agents
// from the command line or as a Connect service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit status.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		ancli.PrintErr(fmt.Sprintf("%v\n", err))
		return 1
	}
	return 0
}
