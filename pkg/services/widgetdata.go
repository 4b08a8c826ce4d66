package services

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"philoblog/pkg/models"
)

// Static widget content, loaded once at startup from the data directory.
var (
	Experiments   []models.ThoughtExperiment
	QuizQuestions []models.QuizQuestion
	QuizResults   map[string]models.QuizResult
)

type quizFile struct {
	Questions []models.QuizQuestion        `yaml:"questions"`
	Results   map[string]models.QuizResult `yaml:"results"`
}

type experimentsFile struct {
	Experiments []models.ThoughtExperiment `yaml:"experiments"`
}

// LoadWidgetData reads experiments.yaml and quiz.yaml from dir and
// validates static data consistency. Any inconsistency is fatal here so a
// broken results table can never surface mid-quiz.
func LoadWidgetData(dir string) error {
	expData, err := os.ReadFile(filepath.Join(dir, "experiments.yaml"))
	if err != nil {
		return fmt.Errorf("reading experiments data: %w", err)
	}
	var exps experimentsFile
	if err := yaml.Unmarshal(expData, &exps); err != nil {
		return fmt.Errorf("parsing experiments data: %w", err)
	}
	for _, exp := range exps.Experiments {
		if exp.ID == "" {
			return fmt.Errorf("experiment %q has no id", exp.Question)
		}
		if len(exp.Choices) == 0 {
			return fmt.Errorf("experiment %q has no choices", exp.ID)
		}
	}

	quizData, err := os.ReadFile(filepath.Join(dir, "quiz.yaml"))
	if err != nil {
		return fmt.Errorf("reading quiz data: %w", err)
	}
	var quiz quizFile
	if err := yaml.Unmarshal(quizData, &quiz); err != nil {
		return fmt.Errorf("parsing quiz data: %w", err)
	}
	if err := ValidateQuizData(quiz.Questions, quiz.Results); err != nil {
		return err
	}

	Experiments = exps.Experiments
	QuizQuestions = quiz.Questions
	QuizResults = quiz.Results
	return nil
}

// FindExperiment returns the experiment with the given id, or nil.
func FindExperiment(id string) *models.ThoughtExperiment {
	for i := range Experiments {
		if Experiments[i].ID == id {
			return &Experiments[i]
		}
	}
	return nil
}
