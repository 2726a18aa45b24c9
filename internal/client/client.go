package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	pb "github.com/ppiankov/safeharbor/api/safeharbor/v1"
	"github.com/ppiankov/safeharbor/internal/classify"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/service"
	"github.com/ppiankov/safeharbor/internal/sitelist"
)

const callTimeout = 5 * time.Second

// Client connects to a safeharbor gRPC advisor.
type Client struct {
	conn *grpc.ClientConn
}

// New creates a gRPC client connected to the given address.
// Fail-closed: if the advisor cannot be reached, Classify returns Pending.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to advisor: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Classify asks the remote advisor for a verdict.
// Fail-closed: an unreachable advisor yields a Pending verdict, never Safe.
func (c *Client) Classify(rawURL string) (service.Verdict, error) {
	var v service.Verdict
	if err := c.call(pb.ClassifyMethod, pb.ClassifyRequest{URL: rawURL}, &v); err != nil {
		domain := classify.ExtractDomain(rawURL)
		return service.Verdict{
			URL:         rawURL,
			Domain:      domain,
			Tier:        string(model.TierPending),
			Label:       model.TierPending.Label(),
			IconKey:     model.TierPending.IconKey(),
			Rationale:   fmt.Sprintf("advisor unreachable: %v", err),
			Recommended: string(model.RecommendedFor(model.TierPending)),
		}, nil
	}
	return v, nil
}

// Ask sends a chat question about rawURL to the remote advisor.
func (c *Client) Ask(text, rawURL string) (service.Answer, error) {
	var a service.Answer
	err := c.call(pb.AskMethod, pb.AskRequest{Text: text, URL: rawURL}, &a)
	return a, err
}

// CheckField asks whether focusing fd on rawURL warrants an advisory.
func (c *Client) CheckField(rawURL string, fd model.FieldDescriptor) (service.FieldCheck, error) {
	var fc service.FieldCheck
	err := c.call(pb.CheckFieldMethod, pb.CheckFieldRequest{URL: rawURL, Field: fd}, &fc)
	return fc, err
}

// Suggest returns safe-site completions for query.
func (c *Client) Suggest(query string) ([]sitelist.Suggestion, error) {
	var resp struct {
		Suggestions []sitelist.Suggestion `json:"suggestions"`
	}
	if err := c.call(pb.SuggestMethod, pb.SuggestRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(method string, req, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	in, err := pb.Encode(req)
	if err != nil {
		return err
	}
	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, resp); err != nil {
		return err
	}
	return pb.Decode(resp, out)
}
