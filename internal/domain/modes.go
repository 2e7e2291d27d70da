package domain

// Mode selects an assistant persona. At most one mode is active at a time;
// selecting the active mode again clears it.
type Mode string

const (
	ModeNone        Mode = ""
	ModeSearch      Mode = "search"
	ModeStudy       Mode = "study"
	ModeCreateImage Mode = "create_image"
)

// ModeConfig carries the display framing and the system instruction a mode
// attaches to outgoing requests.
type ModeConfig struct {
	Icon         string
	Label        string
	Placeholder  string
	SystemPrompt string
}

const DefaultSystemPrompt = "You are a helpful assistant."

var modeConfigs = map[Mode]ModeConfig{
	ModeSearch: {
		Icon:        "🔍",
		Label:       "Search",
		Placeholder: "Search the web...",
		SystemPrompt: "You are a web search assistant. Provide concise, factual, and well-organized answers " +
			"as if you are a search engine. Include key facts, dates, and numbers. Format your response with " +
			"bullet points or numbered lists when appropriate. Always cite relevant context. Start your " +
			"response with a brief summary sentence.",
	},
	ModeStudy: {
		Icon:        "📚",
		Label:       "Study",
		Placeholder: "What do you want to study?",
		SystemPrompt: "You are an expert tutor and study companion. Explain topics step-by-step in a clear, " +
			"educational manner. Use examples, analogies, and bullet points to aid understanding. After " +
			"explaining, suggest 2-3 follow-up questions the student might want to explore. Use emojis " +
			"sparingly to make learning engaging.",
	},
	ModeCreateImage: {
		Icon:        "🎨",
		Label:       "Create Image",
		Placeholder: "Describe the image you want...",
		SystemPrompt: "You are a creative AI image description generator. When the user describes an image " +
			"they want, provide an extremely detailed, vivid, and artistic description of that image as if " +
			"painting it with words. Describe the composition, colors, lighting, mood, style, and every " +
			"visual detail. Format it as: first a brief title for the image, then the full detailed " +
			"description. Make it feel like a professional art prompt.",
	},
}

// GetModeConfig returns the config for a known mode.
func GetModeConfig(mode Mode) (ModeConfig, bool) {
	cfg, ok := modeConfigs[mode]
	return cfg, ok
}

// ParseMode maps a user-supplied name to a mode, accepting the empty string
// as ModeNone.
func ParseMode(name string) (Mode, bool) {
	switch Mode(name) {
	case ModeNone, ModeSearch, ModeStudy, ModeCreateImage:
		return Mode(name), true
	}
	return ModeNone, false
}
