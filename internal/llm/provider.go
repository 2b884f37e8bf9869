package llm

import "context"

// Provider completes chat requests against one model backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *Request) (*Completion, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Messages    []Message
	System      string
	MaxTokens   int
	Temperature float64
}

// Completion carries the text response plus usage and latency for one call.
type Completion struct {
	Text         string
	StopReason   string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}
