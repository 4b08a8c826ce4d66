package models

// ThoughtExperiment is a branching prompt with one analysis text per choice.
// Choices without an analysis entry are legal; the widget shows nothing for
// them rather than failing.
type ThoughtExperiment struct {
	ID       string            `yaml:"id"`
	Question string            `yaml:"question"`
	Choices  []Choice          `yaml:"choices"`
	Analysis map[string]string `yaml:"analysis"`
}

type Choice struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

type QuizQuestion struct {
	ID       string       `yaml:"id"`
	Question string       `yaml:"question"`
	Options  []QuizOption `yaml:"options"`
}

// QuizOption maps a labeled answer to exactly one philosophy tag.
type QuizOption struct {
	ID         string `yaml:"id"`
	Text       string `yaml:"text"`
	Philosophy string `yaml:"philosophy"`
}

// QuizResult describes the outcome shown for a winning philosophy tag.
type QuizResult struct {
	Philosophy  string `yaml:"philosophy"`
	Description string `yaml:"description"`
	Alignment   int    `yaml:"alignment"`
}
