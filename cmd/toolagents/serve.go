package main

import (
	"fmt"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/service"
)

const defaultAddr = "localhost:8080"

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the summarizer and the agents over Connect RPC",
		Long: `Serves two procedures over HTTP/1.1 and HTTP/2 cleartext:

  ` + service.SummarizeProcedure + `  (google.protobuf.StringValue -> google.protobuf.Struct)
  ` + service.RunProcedure + `              (google.protobuf.Struct -> google.protobuf.Struct)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, searchErr, err := newToolRegistry(opts.serper, false)
			if err != nil {
				return err
			}
			if searchErr != nil {
				ancli.PrintWarn(fmt.Sprintf("news_app disabled: %v\n", searchErr))
			}

			svc := service.New(*opts.kernel,
				service.WithTools(reg),
				service.WithKernelOptions(kernel.WithObserver(opts.sink)),
			)
			ancli.PrintOK(fmt.Sprintf("listening on %s\n", addr))
			return service.ListenAndServe(cmd.Context(), addr, svc.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}
