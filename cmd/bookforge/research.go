package main

import (
	"bookforge/internal/agents"
	"bookforge/internal/llm"
	"bookforge/internal/models"
	"bookforge/internal/research"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newResearchCmd(app *application) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // this is better for readability
		Use:     "research [topic]",
		GroupID: "generate",
		Short:   "Investigate a topic with the forensic agents",
		Long: `Fans the four research agents (Detective, Auditor, Insider, Statistician) out
over the topic and synthesizes their reports into a structured research record.
With --notes, skips the agents and normalizes the given notes file instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			modelID, _ := cmd.Flags().GetString("model")
			notesPath, _ := cmd.Flags().GetString("notes")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			outPath, _ := cmd.Flags().GetString("out")

			record, err := runResearch(cmd, app, topic, modelID, notesPath, noCache)
			if err != nil {
				return err
			}
			return writeJSON(outPath, record)
		},
	}
	cmd.Flags().String("model", llm.DefaultTextModel, "model used for agents and synthesis")
	cmd.Flags().String("notes", "", "path to raw research notes; skips the agent stage")
	cmd.Flags().Bool("no-cache", false, "ignore the research cache")
	cmd.Flags().String("out", "", "write the research record to this file instead of stdout")
	return cmd
}

func runResearch(cmd *cobra.Command, app *application, topic, modelID, notesPath string, noCache bool) (*models.ResearchRecord, error) {
	if modelID == "" {
		modelID = llm.DefaultTextModel
	}
	var store research.Store
	if app.store != nil && !noCache {
		store = app.store
	}
	roster := agents.Default(app.registry, modelID, app.logger)
	coordinator := research.NewCoordinator(app.registry, modelID, roster, store, app.logger)

	if notesPath != "" {
		raw, err := os.ReadFile(notesPath)
		if err != nil {
			return nil, err
		}
		return coordinator.NormalizeNotes(cmd.Context(), string(raw))
	}

	return coordinator.Execute(cmd.Context(), topic, func(states []models.AgentState) {
		var parts []string
		for _, state := range states {
			parts = append(parts, fmt.Sprintf("%s=%s", state.Name, state.Status))
		}
		cmd.PrintErrln(strings.Join(parts, " "))
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
