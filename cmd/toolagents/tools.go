package main

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/toolagents/tools"
	"github.com/tailored-agentic-units/toolagents/tools/eda"
	"github.com/tailored-agentic-units/toolagents/tools/serper"
)

// newToolRegistry registers analyze_csv_eda and, when a Serper key is
// configured, NewsSearch. With requireSearch a missing key is an error;
// otherwise it is reported through searchErr and the registry is returned
// without NewsSearch.
func newToolRegistry(cfg serper.Config, requireSearch bool) (reg *tools.Registry, searchErr error, err error) {
	reg = tools.NewRegistry()
	if err := eda.Register(reg); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s: %w", eda.Name, err)
	}

	client, err := serper.NewClient(cfg)
	if err != nil {
		if !requireSearch && errors.Is(err, serper.ErrMissingAPIKey) {
			return reg, err, nil
		}
		return nil, nil, err
	}
	if err := serper.Register(reg, client); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s: %w", serper.ToolName, err)
	}
	return reg, nil, nil
}
