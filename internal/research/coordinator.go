// Package research runs the forensic investigation stage: four specialist
// agents fan out over a topic, their reports are merged into one dossier, and
// a synthesis call turns the dossier into a validated research record.
package research

import (
	"bookforge/internal/agents"
	"bookforge/internal/errors"
	"bookforge/internal/jsonx"
	"bookforge/internal/llm"
	"bookforge/internal/models"
	"bookforge/internal/prompts"
	"bookforge/internal/schema"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrSynthesisFailed marks the fatal case: the synthesis model produced output
// that could not be parsed or validated into a research record.
var ErrSynthesisFailed = errors.NewSentinel("research synthesis failed")

// maxNotesLen bounds raw note input so a pasted dump cannot blow the context
// window.
const maxNotesLen = 20000

// Observer receives a fresh snapshot of all agent states on every transition.
// Snapshots are copies; observers may retain them.
type Observer func(states []models.AgentState)

// Store caches research records by topic. Implementations treat corrupted
// entries as misses.
type Store interface {
	Get(ctx context.Context, topic string) (*models.ResearchRecord, bool, error)
	Put(ctx context.Context, topic string, record *models.ResearchRecord) error
}

// Coordinator fans research agents out over a topic and synthesizes their
// reports. The zero value is not usable; construct with NewCoordinator.
type Coordinator struct {
	registry *llm.Registry
	modelID  string
	roster   []agents.Agent
	store    Store
	logger   *slog.Logger
}

// NewCoordinator wires a coordinator over the given agent roster. store may be
// nil to disable caching.
func NewCoordinator(registry *llm.Registry, modelID string, roster []agents.Agent, store Store, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		registry: registry,
		modelID:  modelID,
		roster:   roster,
		store:    store,
		logger:   logger.With("source", "research.Coordinator"),
	}
}

// Execute investigates topic with every agent in parallel, joins the settled
// reports into a dossier, and synthesizes a validated record. Individual agent
// failures degrade to placeholder reports; only synthesis failure is fatal.
// onProgress may be nil.
func (c *Coordinator) Execute(ctx context.Context, topic string, onProgress Observer) (*models.ResearchRecord, error) {
	if c.store != nil {
		if record, ok, err := c.store.Get(ctx, topic); err != nil {
			c.logger.WarnContext(ctx, "research cache lookup failed", errors.SlogError(err))
		} else if ok {
			c.logger.InfoContext(ctx, "research cache hit", slog.String("topic", topic))
			return record, nil
		}
	}

	states := make([]models.AgentState, len(c.roster))
	for i, agent := range c.roster {
		states[i] = models.AgentState{Name: agent.Name(), Status: models.AgentPending} //nolint:exhaustruct // this is better for readability
	}
	var mu sync.Mutex
	emit := func() {
		if onProgress == nil {
			return
		}
		snapshot := make([]models.AgentState, len(states))
		copy(snapshot, states)
		defer func() {
			if r := recover(); r != nil {
				c.logger.ErrorContext(ctx, "progress observer panicked", slog.Any("panic", r))
			}
		}()
		onProgress(snapshot)
	}

	mu.Lock()
	emit()
	mu.Unlock()

	reports := make([]string, len(c.roster))
	var wg sync.WaitGroup
	for i, agent := range c.roster {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.ErrorContext(ctx, "agent crashed", slog.String("agent", agent.Name()), slog.Any("panic", r))
					mu.Lock()
					states[i].Status = models.AgentFailed
					reports[i] = fmt.Sprintf("[System Error] Agent %s crashed.", agent.Name())
					emit()
					mu.Unlock()
				}
			}()

			mu.Lock()
			states[i].Status = models.AgentRunning
			emit()
			mu.Unlock()

			report, runErr := agent.Run(ctx, topic)

			mu.Lock()
			// A degraded agent still contributes its placeholder to the
			// dossier, but its state must read FAILED.
			if runErr != nil {
				states[i].Status = models.AgentFailed
			} else {
				states[i].Status = models.AgentCompleted
			}
			reports[i] = report
			emit()
			mu.Unlock()
		}()
	}
	wg.Wait()

	dossier := c.assembleDossier(reports)
	record, err := c.synthesize(ctx, topic, dossier)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.Put(ctx, topic, record); err != nil {
			c.logger.WarnContext(ctx, "research cache write failed", errors.SlogError(err))
		}
	}
	return record, nil
}

// NormalizeNotes converts raw unstructured research notes into a validated
// record, skipping the agent stage entirely. Input beyond 20k characters is
// truncated before the model sees it.
func (c *Coordinator) NormalizeNotes(ctx context.Context, raw string) (*models.ResearchRecord, error) {
	if len(raw) > maxNotesLen {
		cut := maxNotesLen
		// Never split a multi-byte rune at the boundary.
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}

	prompt := fmt.Sprintf(`Task: Convert the following RAW RESEARCH NOTES into a structured Y-It Forensic Report JSON.

INPUT TEXT:
%s

INSTRUCTIONS:
1. Extract specific facts, numbers, and warnings.
2. If data is missing (e.g. no "Ethical Rating"), estimate it based on the sentiment of the text.
3. Map unstructured text to the required JSON fields.`, raw)

	return c.structuredCall(ctx, prompt,
		"You are a Data Normalizer. You convert messy text into strict JSON for the Y-It Engine.")
}

func (c *Coordinator) assembleDossier(reports []string) string {
	var b strings.Builder
	for i, report := range reports {
		label := strings.ToUpper(c.roster[i].Name())
		fmt.Fprintf(&b, "%s REPORT: %s\n", label, report)
	}
	return b.String()
}

func (c *Coordinator) synthesize(ctx context.Context, topic, dossier string) (*models.ResearchRecord, error) {
	prompt := fmt.Sprintf(`Analyze the following FORENSIC DOSSIER on "%s".
Synthesize the conflicting reports into a single, cohesive ResearchData object.
If reports are missing or contain errors, estimate conservatively based on the topic context.

FORENSIC DOSSIER:
%s`, topic, dossier)

	return c.structuredCall(ctx, prompt, prompts.ResearchSystem)
}

// structuredCall is the shared JSON-mode path: generate, extract, retry the
// extraction after repair, validate.
func (c *Coordinator) structuredCall(ctx context.Context, prompt, system string) (*models.ResearchRecord, error) {
	provider, def, err := c.registry.ForModel(ctx, c.modelID)
	if err != nil {
		return nil, errors.Wrap(err, "resolve research model")
	}

	text, err := provider.GenerateText(ctx, def.ID, prompt, llm.Options{ //nolint:exhaustruct // this is better for readability
		SystemPrompt: system,
		JSONMode:     true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrSynthesisFailed, err), "synthesis generation")
	}

	raw, err := jsonx.Extract(text)
	if err != nil {
		raw, err = jsonx.Extract(jsonx.Repair(text))
		if err != nil {
			return nil, errors.Wrap(errors.Join(ErrSynthesisFailed, err), "synthesis output unparseable",
				slog.Int("output_len", len(text)))
		}
	}

	record, err := schema.Research(raw)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrSynthesisFailed, err), "synthesis output invalid")
	}
	return record, nil
}
