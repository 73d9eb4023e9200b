// Package service exposes the summarizer and the agent apps as Connect RPC
// procedures. Messages are protobuf well-known types, so any Connect, gRPC or
// gRPC-Web client can call them without generated stubs:
//
//	/toolagents.v1.SummarizerService/Summarize  StringValue -> Struct
//	/toolagents.v1.AgentService/Run             Struct      -> Struct
package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/tailored-agentic-units/toolagents/apps"
	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/session"
	"github.com/tailored-agentic-units/toolagents/tools"
)

const (
	SummarizerServiceName = "toolagents.v1.SummarizerService"
	AgentServiceName      = "toolagents.v1.AgentService"

	SummarizeProcedure = "/" + SummarizerServiceName + "/Summarize"
	RunProcedure       = "/" + AgentServiceName + "/Run"
)

// Option configures a Service.
type Option func(*Service)

// WithApps sets the apps served by Run. Defaults to apps.Builtin.
func WithApps(r *apps.Registry) Option {
	return func(s *Service) { s.apps = r }
}

// WithTools sets the registry app tools are drawn from. Defaults to
// tools.Default.
func WithTools(r *tools.Registry) Option {
	return func(s *Service) { s.tools = r }
}

// WithSessions sets the session store. Defaults to a new in-memory store.
func WithSessions(sessions *session.Service) Option {
	return func(s *Service) { s.sessions = sessions }
}

// WithKernelOptions adds options passed to every kernel the service builds.
func WithKernelOptions(opts ...kernel.Option) Option {
	return func(s *Service) { s.kernelOpts = append(s.kernelOpts, opts...) }
}

// Service implements the summarizer and agent procedures.
type Service struct {
	base       kernel.Config
	apps       *apps.Registry
	tools      *tools.Registry
	sessions   *session.Service
	kernelOpts []kernel.Option
}

// New creates a Service. base is the kernel config each app run starts from.
func New(base kernel.Config, opts ...Option) *Service {
	s := &Service{base: base}
	for _, opt := range opts {
		opt(s)
	}
	if s.apps == nil {
		s.apps = apps.Builtin()
	}
	if s.tools == nil {
		s.tools = tools.Default()
	}
	if s.sessions == nil {
		s.sessions = session.NewService()
	}
	return s
}

// Sessions returns the session store.
func (s *Service) Sessions() *session.Service {
	return s.sessions
}

// Handler returns an http.Handler serving both procedures.
func (s *Service) Handler(opts ...connect.HandlerOption) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(SummarizeProcedure, connect.NewUnaryHandler(
		SummarizeProcedure,
		s.Summarize,
		opts...,
	))
	mux.Handle(RunProcedure, connect.NewUnaryHandler(
		RunProcedure,
		s.Run,
		opts...,
	))
	return mux
}
