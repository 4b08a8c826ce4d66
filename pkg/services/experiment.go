package services

import "philoblog/pkg/models"

// ExperimentState is the two-state machine behind a thought experiment
// widget: unanswered until a choice is picked, then revealed until reset.
// Purely local; never touches the network.
type ExperimentState struct {
	SelectedChoiceID string
	Revealed         bool
}

// SelectChoice records the reader's pick and reveals the analysis. Only
// valid while unanswered; once revealed further picks are ignored until a
// reset.
func (s *ExperimentState) SelectChoice(choiceID string) {
	if s.Revealed {
		return
	}
	s.SelectedChoiceID = choiceID
	s.Revealed = true
}

// Reset returns the widget to its initial state from either state.
func (s *ExperimentState) Reset() {
	s.SelectedChoiceID = ""
	s.Revealed = false
}

// Analysis looks up the text for the selected choice. A choice with no
// analysis entry yields an empty string; the widget never blocks on a
// missing analysis.
func (s *ExperimentState) Analysis(exp *models.ThoughtExperiment) string {
	if !s.Revealed {
		return ""
	}
	return exp.Analysis[s.SelectedChoiceID]
}
