package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/stellarlinkco/wordbench/internal/bench"
)

type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

func parseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return FormatTable
	case "json", "jsonl":
		return FormatJSON
	default:
		return ""
	}
}

func resolveOutputFormat(flagValue string) (OutputFormat, error) {
	if strings.TrimSpace(flagValue) == "" {
		return FormatTable, nil
	}
	out := parseOutputFormat(flagValue)
	if out == "" {
		return "", fmt.Errorf("invalid --output %q (expected table|json)", flagValue)
	}
	return out, nil
}

func FormatTaskResult(res *bench.TaskResult, runID int64, format OutputFormat) string {
	switch format {
	case FormatTable:
		return formatTaskTable(res, runID)
	case FormatJSON:
		return formatTaskJSON(res, runID)
	default:
		return fmt.Sprintf("error: unknown output format %q\n", format)
	}
}

func formatTaskTable(res *bench.TaskResult, runID int64) string {
	if res == nil {
		return ""
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Run %d: model=%s task=%s target=%q\n", runID, res.Model, res.Task, res.TargetWord)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SAMPLE\tFOUND\tFORM\tLATENCY_MS\tERROR")
	for _, s := range res.Samples {
		found := "no"
		if s.Found {
			found = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", s.ID, found, s.MatchedForm, s.Latency.Milliseconds(), s.Error)
	}
	_ = tw.Flush()

	fmt.Fprintf(&buf, "usage_rate=%.4f hits=%d/%d time_ms=%d tokens=%d\n\n",
		res.UsageRate, res.Hits, len(res.Samples), res.TotalTime.Milliseconds(), res.TotalTokens)
	return buf.String()
}

func formatTaskJSON(res *bench.TaskResult, runID int64) string {
	if res == nil {
		return ""
	}

	type sampleJSON struct {
		ID          string  `json:"id"`
		Found       bool    `json:"found"`
		Score       float64 `json:"score"`
		MatchedForm string  `json:"matched_form,omitempty"`
		LatencyMs   int64   `json:"latency_ms"`
		Tokens      int     `json:"tokens"`
		Error       string  `json:"error,omitempty"`
	}
	type resultJSON struct {
		RunID      int64        `json:"run_id"`
		Model      string       `json:"model"`
		Task       string       `json:"task"`
		TargetWord string       `json:"target_word"`
		UsageRate  float64      `json:"usage_rate"`
		Hits       int          `json:"hits"`
		Samples    []sampleJSON `json:"samples"`
		TimeMs     int64        `json:"time_ms"`
		Tokens     int          `json:"tokens"`
	}

	out := resultJSON{
		RunID:      runID,
		Model:      res.Model,
		Task:       res.Task,
		TargetWord: res.TargetWord,
		UsageRate:  res.UsageRate,
		Hits:       res.Hits,
		TimeMs:     res.TotalTime.Milliseconds(),
		Tokens:     res.TotalTokens,
	}
	for _, s := range res.Samples {
		out.Samples = append(out.Samples, sampleJSON{
			ID:          s.ID,
			Found:       s.Found,
			Score:       s.Score,
			MatchedForm: s.MatchedForm,
			LatencyMs:   s.Latency.Milliseconds(),
			Tokens:      s.Tokens,
			Error:       s.Error,
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("error: marshal result: %v\n", err)
	}
	return string(b) + "\n"
}
