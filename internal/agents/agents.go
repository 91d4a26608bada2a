// Package agents implements the specialist research personas that investigate
// a topic in parallel. Each agent is a prompt angle over the same text model.
package agents

import (
	"bookforge/internal/errors"
	"bookforge/internal/llm"
	"context"
	"fmt"
	"log/slog"
)

// Agent investigates a topic from one angle. Run always returns a usable
// report: a failed investigation degrades to a placeholder note so the
// pipeline keeps moving with whatever evidence the other agents found. The
// error reports the degradation so callers can mark the agent as failed.
type Agent interface {
	Name() string
	Run(ctx context.Context, topic string) (string, error)
}

type searchAgent struct {
	name     string
	system   string
	brief    string
	empty    string
	fallback string
	registry *llm.Registry
	modelID  string
	logger   *slog.Logger
}

func (a *searchAgent) Name() string { return a.name }

func (a *searchAgent) Run(ctx context.Context, topic string) (string, error) {
	provider, def, err := a.registry.ForModel(ctx, a.modelID)
	if err != nil {
		a.logger.ErrorContext(ctx, "agent has no provider", slog.String("agent", a.name), errors.SlogError(err))
		return a.fallback, errors.Wrap(err, "resolve agent model", slog.String("agent", a.name))
	}

	prompt := fmt.Sprintf(a.brief, topic)
	text, err := provider.GenerateText(ctx, def.ID, prompt, llm.Options{ //nolint:exhaustruct // this is better for readability
		SystemPrompt: a.system,
		Temperature:  0.7,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "agent investigation failed", slog.String("agent", a.name), errors.SlogError(err))
		return a.fallback, errors.Wrap(err, "agent investigation", slog.String("agent", a.name))
	}
	if text == "" {
		return a.empty, nil
	}
	return text, nil
}

// NewDetective builds the agent that mines Reddit-style complaints and social
// proof.
func NewDetective(registry *llm.Registry, modelID string, logger *slog.Logger) Agent {
	return &searchAgent{
		name:   "Detective",
		system: "You are a skeptical investigator who searches Reddit and social media.",
		brief: `You are a REDDIT DETECTIVE investigating "%s".
Search for:
- Common complaints and failure stories
- Success claims vs reality
- Red flags and warning signs
- Typical user experiences

Format: Write a detailed investigative report as if you found this on Reddit.`,
		empty:    "[Detective found no evidence]",
		fallback: "[Detective Agent: Investigation failed. Proceeding with limited data.]",
		registry: registry,
		modelID:  modelID,
		logger:   logger.With("source", "agents"),
	}
}

// NewAuditor builds the agent that dissects financial claims and hidden costs.
func NewAuditor(registry *llm.Registry, modelID string, logger *slog.Logger) Agent {
	return &searchAgent{
		name:   "Auditor",
		system: "You are a forensic accountant who exposes financial lies.",
		brief: `You are a FINANCIAL AUDITOR examining "%s".
Analyze:
- Advertised vs actual startup costs
- Hidden fees and ongoing expenses
- Revenue claims vs realistic expectations
- Time investment required

Be ruthlessly honest about the numbers.`,
		empty:    "[Auditor found no financial data]",
		fallback: "[Auditor Agent: Audit failed. Proceeding with estimated figures.]",
		registry: registry,
		modelID:  modelID,
		logger:   logger.With("source", "agents"),
	}
}

// NewInsider builds the agent that surfaces testimonials and case studies.
func NewInsider(registry *llm.Registry, modelID string, logger *slog.Logger) Agent {
	return &searchAgent{
		name:   "Insider",
		system: "You are a disillusioned industry insider sharing hidden truths.",
		brief: `You are an INSIDER SOURCE who knows the truth about "%s".
Provide:
- 2-3 detailed case studies (mix of winners and losers)
- Behind-the-scenes information
- What the gurus don't tell you
- Who actually profits in this ecosystem

Write as someone who has been in the industry.`,
		empty:    "[Insider has no intel]",
		fallback: "[Insider Agent: Intel gathering failed. Using general knowledge.]",
		registry: registry,
		modelID:  modelID,
		logger:   logger.With("source", "agents"),
	}
}

// NewStatistician builds the agent that compiles hard market numbers.
func NewStatistician(registry *llm.Registry, modelID string, logger *slog.Logger) Agent {
	return &searchAgent{
		name:   "Statistician",
		system: "You are a statistician who only trusts hard data.",
		brief: `You are a DATA SCIENTIST analyzing "%s".
Compile:
- Industry-wide success/failure rates (be realistic!)
- Average income statistics (median, not mean)
- Market saturation indicators
- Year-over-year trends
- Comparison to traditional alternatives

Use specific numbers and cite plausible sources.`,
		empty:    "[Statistician has no data]",
		fallback: "[Stat Agent: Data collection failed. Using industry averages.]",
		registry: registry,
		modelID:  modelID,
		logger:   logger.With("source", "agents"),
	}
}

// Default returns the standard four-agent roster in dossier order.
func Default(registry *llm.Registry, modelID string, logger *slog.Logger) []Agent {
	return []Agent{
		NewDetective(registry, modelID, logger),
		NewAuditor(registry, modelID, logger),
		NewInsider(registry, modelID, logger),
		NewStatistician(registry, modelID, logger),
	}
}
