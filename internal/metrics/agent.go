package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameAgentRequests = "agent_requests"
)

var AgentRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameAgentRequests,
		Help:      "Requests sent to the agent serving endpoint",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

const (
	NamePromptTokens     = "agent_prompt_tokens"
	NameCompletionTokens = "agent_completion_tokens"
	NameTotalTokens      = "agent_total_tokens"
)

var PromptTokens = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NamePromptTokens,
		Help:      "Prompt tokens consumed by the agent serving endpoint",
		Namespace: Namespace,
	},
	[]string{LabelModel},
)

var CompletionTokens = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameCompletionTokens,
		Help:      "Completion tokens produced by the agent serving endpoint",
		Namespace: Namespace,
	},
	[]string{LabelModel},
)

var TotalTokens = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameTotalTokens,
		Help:      "Total tokens used by the agent serving endpoint",
		Namespace: Namespace,
	},
	[]string{LabelModel},
)
