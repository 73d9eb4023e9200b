package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/toolagents/agent"
	"github.com/tailored-agentic-units/toolagents/apps"
	"github.com/tailored-agentic-units/toolagents/kernel"
)

// appInfo is an app with its effective agent: the configured agent after
// the app preset and any matching agents.<name> profile are applied.
type appInfo struct {
	Name     string   `json:"name"`
	Agent    string   `json:"agent"`
	Provider string   `json:"provider"`
	Model    string   `json:"model"`
	Tools    []string `json:"tools"`
	Profile  bool     `json:"profile"`
}

func newAppsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List the agent apps and the model each one runs on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := describeApps(*opts.kernel, apps.Builtin())
			if err != nil {
				return err
			}
			return printApps(cmd.OutOrStdout(), infos, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the apps as JSON")
	return cmd
}

func describeApps(base kernel.Config, reg *apps.Registry) ([]appInfo, error) {
	var infos []appInfo
	for _, app := range reg.List() {
		cfg := app.Configure(base)
		profiles, err := agent.NewRegistryFrom(cfg.Agents)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", app.Name, err)
		}
		_, missing := profiles.Profile(cfg.Agent.Name)
		eff := profiles.Layer(cfg.Agent)

		info := appInfo{
			Name:    app.Name,
			Agent:   eff.Name,
			Tools:   cfg.Tools,
			Profile: missing == nil,
		}
		if eff.Provider != nil {
			info.Provider = eff.Provider.Name
		}
		if eff.Model != nil {
			info.Model = eff.Model.Name
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func printApps(w io.Writer, infos []appInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	for _, info := range infos {
		model := info.Provider + "/" + info.Model
		if info.Profile {
			model += colorFaint.Sprint(" (profile)")
		}
		fmt.Fprintf(w, "%s %s\n", colorAccent.Sprint("●"), colorBold.Sprint(info.Name))
		fmt.Fprintf(w, "  agent  %s\n  model  %s\n  tools  %s\n",
			info.Agent, model, strings.Join(info.Tools, ", "))
	}
	return nil
}
