package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tailored-agentic-units/toolagents/agent"
	"github.com/tailored-agentic-units/toolagents/agent/providers"
	"github.com/tailored-agentic-units/toolagents/apps"
	"github.com/tailored-agentic-units/toolagents/kernel"
	"github.com/tailored-agentic-units/toolagents/tabular"
	"github.com/tailored-agentic-units/toolagents/tools"
)

var (
	errMissingApp    = errors.New("app is required")
	errMissingPrompt = errors.New("prompt is required")
)

// Summarize runs the summarizer on the request text. Malformed input is
// reported as CodeInvalidArgument.
func (s *Service) Summarize(ctx context.Context, req *connect.Request[wrapperspb.StringValue]) (*connect.Response[structpb.Struct], error) {
	report, err := tabular.Summarize(req.Msg.GetValue())
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	out, err := toStruct(newSummary(report))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encode report: %w", err))
	}
	return connect.NewResponse(out), nil
}

// Run sends a prompt to an app's agent in the session named by the request
// and returns the final answer with the tool calls made on the way. Runs in
// the same session are serialized.
func (s *Service) Run(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	var in RunRequest
	if err := fromStruct(req.Msg, &in); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("decode request: %w", err))
	}
	if in.App == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingApp)
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingPrompt)
	}

	app, err := s.apps.Get(in.App)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	// Session identity comes from the request only. An empty session id
	// starts a new session.
	cfg := app.Configure(s.base)
	cfg.Session.UserID = in.UserID
	cfg.Session.SessionID = in.SessionID

	sesh, err := s.sessions.GetOrCreate(ctx, cfg.Session)
	if err != nil {
		return nil, connect.NewError(errorCode(err), err)
	}

	release, err := s.sessions.Acquire(ctx, sesh)
	if err != nil {
		return nil, connect.NewError(errorCode(err), err)
	}
	defer release()

	opts := append([]kernel.Option{kernel.WithSession(sesh)}, s.kernelOpts...)
	k, err := app.Kernel(s.base, s.tools, opts...)
	if err != nil {
		return nil, connect.NewError(errorCode(err), err)
	}

	result, err := k.Run(ctx, in.Prompt)
	if err != nil {
		return nil, connect.NewError(errorCode(err), err)
	}

	out, err := toStruct(newRunResponse(result))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encode result: %w", err))
	}
	return connect.NewResponse(out), nil
}

func errorCode(err error) connect.Code {
	var httpErr *agent.HTTPError
	switch {
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, kernel.ErrEmptyPrompt):
		return connect.CodeInvalidArgument
	case errors.Is(err, apps.ErrAppNotFound):
		return connect.CodeNotFound
	case errors.Is(err, tools.ErrNotFound),
		errors.Is(err, agent.ErrMissingAPIKey),
		errors.Is(err, agent.ErrMissingModel),
		errors.Is(err, agent.ErrEmptyAgentName),
		errors.Is(err, providers.ErrUnknownProvider):
		return connect.CodeFailedPrecondition
	case errors.Is(err, kernel.ErrMaxIterations):
		return connect.CodeResourceExhausted
	case errors.As(err, &httpErr):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}
