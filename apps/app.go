// Package apps defines the agent applications served by toolagents: a named
// agent persona, its instruction, the tools it may call and the session
// identity its conversations are recorded under.
package apps

import (
	"fmt"

	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/tools"
	"github.com/tailored-agentic-units/toolagents/tools/eda"
	"github.com/tailored-agentic-units/toolagents/tools/serper"
)

// App is an agent application preset.
type App struct {
	Name        string   // Session application name.
	AgentName   string   // Name of the agent persona.
	Description string   // What the agent does.
	Instruction string   // Standing instruction sent as the system prompt.
	Model       string   // "provider/model" reference.
	Tools       []string // Tool names offered to the agent.
	UserID      string   // Default user for sessions.
	SessionID   string   // Default session id.
}

// EDA returns the exploratory data analysis app.
func EDA() App {
	return App{
		Name:      "eda_on_csv",
		AgentName: "eda_agent",
		Description: "This agent will apply EDA on the csv file content provided to you. " +
			"Give proper points with explainations based on the EDA results. " +
			"Also provide the list and types of statistical charts that can be created using the columns, " +
			"Give the column names along with chart recommendation. " +
			"Suggest Python based code for printing one chart.",
		Instruction: "As an agent, you will apply EDA on the csv file content provided to you using the available tools.",
		Model:       "openai/gpt-4o",
		Tools:       []string{eda.Name},
		UserID:      "st004",
		SessionID:   "0017",
	}
}

// News returns the news question answering app.
func News() App {
	return App{
		Name:        "news_app",
		AgentName:   "news_agent",
		Description: "QA based on Google Search using Serper",
		Instruction: "I can search the internet for news articles and answer your questions.",
		Model:       "openai/gpt-4o",
		Tools:       []string{serper.ToolName},
		UserID:      "st04",
		SessionID:   "01234",
	}
}

// EDAPrompt builds the user message asking for EDA of csv.
func EDAPrompt(csv string) string {
	return "Perform EDA on this CSV data:\n\n" + csv
}

// Configure returns base with the app's identity applied. The session always
// belongs to the app; every other field is filled in only where base leaves
// it unset, so explicit configuration wins over the preset.
func (a App) Configure(base kernel.Config) kernel.Config {
	cfg := base
	cfg.Agent = base.Agent.Clone()

	if cfg.Agent.Name == "" {
		cfg.Agent.Name = a.AgentName
	}
	if cfg.Agent.Description == "" {
		cfg.Agent.Description = a.Description
	}
	if cfg.Agent.Instruction == "" {
		cfg.Agent.Instruction = a.Instruction
	}
	if a.Model != "" && (cfg.Agent.Model == nil || cfg.Agent.Model.Name == "") {
		cfg.Agent.UseModel(a.Model)
	}
	if len(cfg.Tools) == 0 {
		cfg.Tools = append([]string(nil), a.Tools...)
	}

	cfg.Session.AppName = a.Name
	if cfg.Session.UserID == "" {
		cfg.Session.UserID = a.UserID
	}
	if cfg.Session.SessionID == "" {
		cfg.Session.SessionID = a.SessionID
	}

	return cfg
}

// Kernel builds a kernel for the app. The agent is offered only the app's
// tools, taken from reg.
func (a App) Kernel(base kernel.Config, reg *tools.Registry, opts ...kernel.Option) (*kernel.Kernel, error) {
	cfg := a.Configure(base)

	sub, err := reg.Subset(cfg.Tools...)
	if err != nil {
		return nil, fmt.Errorf("app %s: %w", a.Name, err)
	}

	opts = append([]kernel.Option{kernel.WithToolExecutor(sub)}, opts...)
	return kernel.New(&cfg, opts...)
}
