package models

// ResearchRecord is the canonical structured output of the research phase.
// It is created once per investigation by the research coordinator and is
// immutable afterwards, apart from being cached verbatim by topic.
type ResearchRecord struct {
	Summary         string         `json:"summary"`
	EthicalRating   int            `json:"ethicalRating"` // 1-10
	ProfitPotential string         `json:"profitPotential"`
	MarketStats     []Stat         `json:"marketStats"`
	HiddenCosts     []Stat         `json:"hiddenCosts"`
	CaseStudies     []CaseStudy    `json:"caseStudies"`
	Affiliates      []AffiliateOpp `json:"affiliates"`
}

// Stat is a labeled data point with the context it was found in.
type Stat struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Context string `json:"context"`
}

type CaseStudyType string

const (
	CaseStudyWinner CaseStudyType = "WINNER"
	CaseStudyLoser  CaseStudyType = "LOSER"
)

// CaseStudy describes one person's run at the topic, winner or loser.
// Type accepts values outside the declared constants since models
// occasionally invent a plausible category.
type CaseStudy struct {
	Name       string        `json:"name"`
	Type       CaseStudyType `json:"type"`
	Background string        `json:"background"`
	Strategy   string        `json:"strategy"`
	Outcome    string        `json:"outcome"`
	Revenue    string        `json:"revenue"`
}

type AffiliateType string

const (
	// AffiliateParticipant pays people doing the hustle.
	AffiliateParticipant AffiliateType = "PARTICIPANT"
	// AffiliateWriter pays people writing about the hustle.
	AffiliateWriter AffiliateType = "WRITER"
)

// AffiliateOpp is an affiliate program relevant to the topic.
type AffiliateOpp struct {
	Program    string        `json:"program"`
	Potential  string        `json:"potential,omitempty"`
	Type       AffiliateType `json:"type"`
	Commission string        `json:"commission"`
	Notes      string        `json:"notes"`
}

type AgentStatus string

const (
	AgentPending   AgentStatus = "PENDING"
	AgentRunning   AgentStatus = "RUNNING"
	AgentCompleted AgentStatus = "COMPLETED"
	AgentFailed    AgentStatus = "FAILED"
)

// AgentState is ephemeral telemetry for one specialized agent, emitted as part
// of a full-snapshot sequence to a progress observer. It is never persisted.
type AgentState struct {
	Name    string      `json:"name"`
	Status  AgentStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}
