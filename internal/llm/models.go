package llm

// Provider identifiers used by the model catalog and registry.
const (
	ProviderGoogle    = "google"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Default models per pipeline stage.
const (
	DefaultTextModel   = "gemini-2.5-flash"
	DefaultImageModel  = "dall-e-3"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
)

type Capability string

const (
	CapabilityText     Capability = "text"
	CapabilityImage    Capability = "image"
	CapabilityAudio    Capability = "audio"
	CapabilityTools    Capability = "tools"
	CapabilityJSONMode Capability = "json_mode"
	CapabilityThinking Capability = "thinking"
)

// Pricing is dollars per million tokens.
type Pricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// ModelDefinition describes one catalog entry: which provider serves the
// model, what it can do, and what it costs.
type ModelDefinition struct {
	ID            string
	Provider      string
	DisplayName   string
	ContextWindow int
	Pricing       Pricing
	Capabilities  []Capability
	// Visual means the model accepts image inputs.
	Visual bool
}

// Has reports whether the model declares the capability.
func (m ModelDefinition) Has(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Cost computes the dollar cost of a call from its token counts.
func (m ModelDefinition) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1_000_000*m.Pricing.InputPer1M +
		float64(outputTokens)/1_000_000*m.Pricing.OutputPer1M
}

// catalog is the static model registry. Image-only entries price per image
// out of band, hence the zero token pricing.
var catalog = []ModelDefinition{
	{
		ID:            "claude-3-5-sonnet-20241022",
		Provider:      ProviderAnthropic,
		DisplayName:   "Claude 3.5 Sonnet",
		ContextWindow: 200_000,
		Pricing:       Pricing{InputPer1M: 3.00, OutputPer1M: 15.00},
		Capabilities:  []Capability{CapabilityText, CapabilityTools, CapabilityJSONMode, CapabilityThinking},
		Visual:        true,
	},
	{
		ID:            "claude-3-5-haiku-20241022",
		Provider:      ProviderAnthropic,
		DisplayName:   "Claude 3.5 Haiku",
		ContextWindow: 200_000,
		Pricing:       Pricing{InputPer1M: 0.80, OutputPer1M: 4.00},
		Capabilities:  []Capability{CapabilityText, CapabilityTools, CapabilityJSONMode},
	},
	{
		ID:            "gpt-4o",
		Provider:      ProviderOpenAI,
		DisplayName:   "GPT-4o",
		ContextWindow: 128_000,
		Pricing:       Pricing{InputPer1M: 2.50, OutputPer1M: 10.00},
		Capabilities:  []Capability{CapabilityText, CapabilityTools, CapabilityJSONMode},
		Visual:        true,
	},
	{
		ID:            "gpt-4o-mini",
		Provider:      ProviderOpenAI,
		DisplayName:   "GPT-4o Mini",
		ContextWindow: 128_000,
		Pricing:       Pricing{InputPer1M: 0.15, OutputPer1M: 0.60},
		Capabilities:  []Capability{CapabilityText, CapabilityTools, CapabilityJSONMode},
		Visual:        true,
	},
	{
		ID:           "dall-e-3",
		Provider:     ProviderOpenAI,
		DisplayName:  "DALL-E 3",
		Capabilities: []Capability{CapabilityImage},
	},
	{
		ID:            "gemini-2.5-flash",
		Provider:      ProviderGoogle,
		DisplayName:   "Gemini 2.5 Flash",
		ContextWindow: 1_000_000,
		Pricing:       Pricing{InputPer1M: 0.30, OutputPer1M: 2.50},
		Capabilities:  []Capability{CapabilityText, CapabilityTools, CapabilityJSONMode, CapabilityThinking},
		Visual:        true,
	},
	{
		ID:            "gemini-2.5-pro",
		Provider:      ProviderGoogle,
		DisplayName:   "Gemini 2.5 Pro",
		ContextWindow: 1_000_000,
		Pricing:       Pricing{InputPer1M: 1.25, OutputPer1M: 10.00},
		Capabilities:  []Capability{CapabilityText, CapabilityTools, CapabilityJSONMode, CapabilityThinking},
		Visual:        true,
	},
	{
		ID:           "gemini-2.5-flash-preview-tts",
		Provider:     ProviderGoogle,
		DisplayName:  "Gemini 2.5 Flash TTS",
		Capabilities: []Capability{CapabilityAudio},
	},
	{
		ID:           "imagen-3.0-generate-001",
		Provider:     ProviderGoogle,
		DisplayName:  "Imagen 3",
		Capabilities: []Capability{CapabilityImage},
	},
}

// Model resolves a model identifier to its catalog entry.
func Model(id string) (ModelDefinition, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModelDefinition{}, false
}

// ModelsByProvider lists catalog entries served by the given provider.
func ModelsByProvider(provider string) []ModelDefinition {
	var out []ModelDefinition
	for _, m := range catalog {
		if m.Provider == provider {
			out = append(out, m)
		}
	}
	return out
}
