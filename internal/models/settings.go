package models

// Length and density tiers share the same 1-3 scale: 1 is minimal, 3 is maximal.
const (
	TierNano     = 1
	TierStandard = 2
	TierDeep     = 3
)

// GenSettings carries the user's generation preferences. Manifest is the
// free-form instruction block sent verbatim to both the outline and every
// chapter prompt; it is never parsed into structured overrides here.
type GenSettings struct {
	Tone            string
	VisualStyle     string
	LengthLevel     int // 1 (Nano), 2 (Standard), 3 (Deep)
	ImageDensity    int // 1 (Text), 2 (Balanced), 3 (Visual Heavy)
	TechLevel       int // 1 (Artistic), 2 (Hybrid), 3 (Technical)
	TargetWordCount int
	FrontCoverHint  string
	BackCoverHint   string
	Manifest        string
	TextOnly        bool

	// Per-stage model overrides; empty means the default model.
	ResearchModel string
	WritingModel  string
	ImageModel    string
	PodcastModel  string

	// Workers bounds concurrent chapter generation. Zero or one keeps the
	// original strictly sequential behavior.
	Workers int
}

// PodcastSettings configures podcast script and audio generation.
type PodcastSettings struct {
	Host1Voice        string
	Host2Voice        string
	Host1Name         string
	Host2Name         string
	ConversationStyle string // e.g. "Skeptical vs Optimist", "Deep Dive"
	LengthLevel       int    // 1 (Short), 2 (Medium), 3 (Long)
}
