package service

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls a toolagents service.
type Client struct {
	summarize *connect.Client[wrapperspb.StringValue, structpb.Struct]
	run       *connect.Client[structpb.Struct, structpb.Struct]
}

// NewClient creates a Client for the service at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		summarize: connect.NewClient[wrapperspb.StringValue, structpb.Struct](
			httpClient,
			baseURL+SummarizeProcedure,
			opts...,
		),
		run: connect.NewClient[structpb.Struct, structpb.Struct](
			httpClient,
			baseURL+RunProcedure,
			opts...,
		),
	}
}

// Summarize summarizes csv on the server.
func (c *Client) Summarize(ctx context.Context, csv string) (*Summary, error) {
	resp, err := c.summarize.CallUnary(ctx, connect.NewRequest(wrapperspb.String(csv)))
	if err != nil {
		return nil, err
	}

	var out Summary
	if err := fromStruct(resp.Msg, &out); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &out, nil
}

// Run sends a prompt to an app on the server.
func (c *Client) Run(ctx context.Context, in RunRequest) (*RunResponse, error) {
	msg, err := toStruct(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.run.CallUnary(ctx, connect.NewRequest(msg))
	if err != nil {
		return nil, err
	}

	var out RunResponse
	if err := fromStruct(resp.Msg, &out); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &out, nil
}
