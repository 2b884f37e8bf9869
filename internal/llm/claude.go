package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/stellarlinkco/wordbench/internal/claude"
)

type ClaudeProvider struct {
	client *claude.Client
}

func NewClaudeProvider(apiKey string, baseURL string, model string) *ClaudeProvider {
	opts := make([]claude.Option, 0, 2)
	if v := strings.TrimSpace(baseURL); v != "" {
		opts = append(opts, claude.WithBaseURL(v))
	}
	if v := strings.TrimSpace(model); v != "" {
		opts = append(opts, claude.WithModel(v))
	}
	return &ClaudeProvider{
		client: claude.NewClient(strings.TrimSpace(apiKey), opts...),
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

func (p *ClaudeProvider) Complete(ctx context.Context, req *Request) (*Completion, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("llm: claude: nil client")
	}
	if req == nil {
		return nil, errors.New("llm: claude: nil request")
	}

	msgs := make([]claude.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := strings.TrimSpace(m.Role)
		if role == "" {
			role = "user"
		}
		msgs = append(msgs, claude.Message{
			Role:    role,
			Content: m.Content,
		})
	}

	res, err := p.client.CompleteText(ctx, &claude.Request{
		Messages:    msgs,
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if res == nil {
		return nil, err
	}

	out := &Completion{
		Text:         res.TextContent,
		InputTokens:  res.InputTokens,
		OutputTokens: res.OutputTokens,
		LatencyMs:    res.LatencyMs,
	}
	if res.Response != nil {
		out.StopReason = res.Response.StopReason
	}
	if err != nil {
		return out, err
	}
	return out, nil
}
