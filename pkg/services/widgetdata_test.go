package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validExperiments = `
experiments:
  - id: trolley
    question: Pull the lever?
    choices:
      - id: pull
        text: Pull it
    analysis:
      pull: Utilitarian.
`

const validQuiz = `
questions:
  - id: "1"
    question: What matters most?
    options:
      - id: a
        text: Outcomes
        philosophy: Utilitarianism
results:
  Utilitarianism:
    philosophy: Utilitarianism
    description: Outcomes first.
    alignment: 85
`

func writeWidgetData(t *testing.T, experiments, quiz string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "experiments.yaml"), []byte(experiments), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quiz.yaml"), []byte(quiz), 0644))
	return dir
}

func TestLoadWidgetData(t *testing.T) {
	dir := writeWidgetData(t, validExperiments, validQuiz)

	require.NoError(t, LoadWidgetData(dir))

	require.Len(t, Experiments, 1)
	assert.Equal(t, "trolley", Experiments[0].ID)
	assert.NotNil(t, FindExperiment("trolley"))
	assert.Nil(t, FindExperiment("missing"))

	require.Len(t, QuizQuestions, 1)
	assert.Contains(t, QuizResults, "Utilitarianism")
}

func TestLoadWidgetDataRejectsMissingResultEntry(t *testing.T) {
	quiz := `
questions:
  - id: "1"
    question: What matters most?
    options:
      - id: a
        text: Outcomes
        philosophy: Nihilism
results:
  Utilitarianism:
    philosophy: Utilitarianism
    description: Outcomes first.
    alignment: 85
`
	dir := writeWidgetData(t, validExperiments, quiz)

	err := LoadWidgetData(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nihilism")
}

func TestLoadWidgetDataRequiresFiles(t *testing.T) {
	err := LoadWidgetData(t.TempDir())
	assert.Error(t, err)
}
