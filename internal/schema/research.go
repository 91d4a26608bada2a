package schema

import (
	"bookforge/internal/models"
	"encoding/json"
	"fmt"
	"math"
)

type statWire struct {
	Label   *Str `json:"label"`
	Value   *Str `json:"value"`
	Context *Str `json:"context"`
}

type caseStudyWire struct {
	Name       *Str `json:"name"`
	Type       Str  `json:"type"`
	Background *Str `json:"background"`
	Strategy   *Str `json:"strategy"`
	Outcome    *Str `json:"outcome"`
	Revenue    *Str `json:"revenue"`
}

type affiliateWire struct {
	Program    *Str `json:"program"`
	Potential  Str  `json:"potential"`
	Type       Str  `json:"type"`
	Commission *Str `json:"commission"`
	Notes      *Str `json:"notes"`
}

type researchWire struct {
	Summary         *Str            `json:"summary"`
	EthicalRating   *Num            `json:"ethicalRating"`
	ProfitPotential *Str            `json:"profitPotential"`
	MarketStats     []statWire      `json:"marketStats"`
	HiddenCosts     []statWire      `json:"hiddenCosts"`
	CaseStudies     []caseStudyWire `json:"caseStudies"`
	Affiliates      []affiliateWire `json:"affiliates"`
}

// Research validates data against the ResearchRecord shape. Missing array
// fields become empty slices so the returned record always carries every
// array; missing scalar structure is a violation.
func Research(data []byte) (*models.ResearchRecord, error) {
	const kind = "ResearchRecord"

	var wire researchWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, invalid(kind, []string{err.Error()})
	}

	var violations []string
	if wire.Summary == nil {
		violations = append(violations, "summary: required")
	}
	if wire.EthicalRating == nil {
		violations = append(violations, "ethicalRating: required")
	} else if *wire.EthicalRating < 1 || *wire.EthicalRating > 10 {
		violations = append(violations, fmt.Sprintf("ethicalRating: %v outside [1,10]", *wire.EthicalRating))
	}
	if wire.ProfitPotential == nil {
		violations = append(violations, "profitPotential: required")
	}

	record := models.ResearchRecord{
		MarketStats: make([]models.Stat, 0, len(wire.MarketStats)),
		HiddenCosts: make([]models.Stat, 0, len(wire.HiddenCosts)),
		CaseStudies: make([]models.CaseStudy, 0, len(wire.CaseStudies)),
		Affiliates:  make([]models.AffiliateOpp, 0, len(wire.Affiliates)),
	}

	for i, s := range wire.MarketStats {
		stat, errs := convertStat(fmt.Sprintf("marketStats[%d]", i), s)
		violations = append(violations, errs...)
		record.MarketStats = append(record.MarketStats, stat)
	}
	for i, s := range wire.HiddenCosts {
		stat, errs := convertStat(fmt.Sprintf("hiddenCosts[%d]", i), s)
		violations = append(violations, errs...)
		record.HiddenCosts = append(record.HiddenCosts, stat)
	}
	for i, c := range wire.CaseStudies {
		field := fmt.Sprintf("caseStudies[%d]", i)
		for name, v := range map[string]*Str{
			"name": c.Name, "background": c.Background, "strategy": c.Strategy,
			"outcome": c.Outcome, "revenue": c.Revenue,
		} {
			if v == nil {
				violations = append(violations, field+"."+name+": required")
			}
		}
		record.CaseStudies = append(record.CaseStudies, models.CaseStudy{
			Name:       str(c.Name),
			Type:       models.CaseStudyType(c.Type),
			Background: str(c.Background),
			Strategy:   str(c.Strategy),
			Outcome:    str(c.Outcome),
			Revenue:    str(c.Revenue),
		})
	}
	for i, a := range wire.Affiliates {
		field := fmt.Sprintf("affiliates[%d]", i)
		for name, v := range map[string]*Str{
			"program": a.Program, "commission": a.Commission, "notes": a.Notes,
		} {
			if v == nil {
				violations = append(violations, field+"."+name+": required")
			}
		}
		record.Affiliates = append(record.Affiliates, models.AffiliateOpp{
			Program:    str(a.Program),
			Potential:  string(a.Potential),
			Type:       models.AffiliateType(a.Type),
			Commission: str(a.Commission),
			Notes:      str(a.Notes),
		})
	}

	if len(violations) > 0 {
		return nil, invalid(kind, violations)
	}

	record.Summary = str(wire.Summary)
	record.EthicalRating = int(math.Round(float64(*wire.EthicalRating)))
	record.ProfitPotential = str(wire.ProfitPotential)
	return &record, nil
}

func convertStat(field string, s statWire) (models.Stat, []string) {
	var violations []string
	for name, v := range map[string]*Str{"label": s.Label, "value": s.Value, "context": s.Context} {
		if v == nil {
			violations = append(violations, field+"."+name+": required")
		}
	}
	return models.Stat{Label: str(s.Label), Value: str(s.Value), Context: str(s.Context)}, violations
}

func str(s *Str) string {
	if s == nil {
		return ""
	}
	return string(*s)
}
