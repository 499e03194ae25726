package orchestrator

import (
	"regexp"
	"strings"

	"architect/internal/agent"
)

const (
	maxMessageLen  = 500
	maxTopicLen    = 30
	maxQueryLen    = 150
	maxContextLen  = 300
	fallbackTopic  = "architecture"
)

var (
	topicSplit    = regexp.MustCompile(`[,\s]+`)
	nonAlphaNum   = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// sanitize bounds the model's output so downstream components never see
// oversized or multi-topic fields. The generator may hallucinate partial or
// overlong values; this pass, not the schema, is the enforcement point.
func sanitize(out agent.OrchestratorOutput) agent.OrchestratorOutput {
	out.Message = truncate(out.Message, maxMessageLen)

	if out.ResearchTopic != "" {
		first := topicSplit.Split(out.ResearchTopic, 2)[0]
		first = nonAlphaNum.ReplaceAllString(first, "")
		first = strings.ToLower(first)
		if len(first) > maxTopicLen {
			first = first[:maxTopicLen]
		}
		if first == "" {
			first = fallbackTopic
		}
		out.ResearchTopic = first
	}

	out.ResearchQuery = truncate(out.ResearchQuery, maxQueryLen)
	out.ResearchContext = truncate(out.ResearchContext, maxContextLen)
	return out
}

// truncate cuts s to max characters, reserving three for an ellipsis marker.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
