package services

import (
	"fmt"

	"philoblog/pkg/models"
)

// QuizSession walks a fixed, ordered question list forward-only. Answers
// are keyed by question id; after the last answer a result is computed and
// the session becomes terminal until reset.
type QuizSession struct {
	questions []models.QuizQuestion
	results   map[string]models.QuizResult

	current int
	answers map[string]string
	// (questionID, philosophy) pairs in recording order. Tallying walks
	// this slice so the tie-break in finish is deterministic.
	recorded [][2]string
	result   *models.QuizResult
}

func NewQuizSession(questions []models.QuizQuestion, results map[string]models.QuizResult) *QuizSession {
	return &QuizSession{
		questions: questions,
		results:   results,
		answers:   make(map[string]string),
	}
}

// Current returns the question awaiting an answer, or nil once finished.
func (s *QuizSession) Current() *models.QuizQuestion {
	if s.current >= len(s.questions) {
		return nil
	}
	return &s.questions[s.current]
}

// CurrentIndex reports the zero-based position in the question list.
func (s *QuizSession) CurrentIndex() int {
	return s.current
}

func (s *QuizSession) Len() int {
	return len(s.questions)
}

func (s *QuizSession) Finished() bool {
	return s.result != nil
}

// Result is non-nil only after the last question has been answered.
func (s *QuizSession) Result() *models.QuizResult {
	return s.result
}

// Answers returns the recorded (questionID, philosophy) pairs in answer
// order, for persisting the session between requests.
func (s *QuizSession) Answers() [][2]string {
	out := make([][2]string, len(s.recorded))
	copy(out, s.recorded)
	return out
}

// Answer records philosophy for questionID and advances. Ignored once the
// quiz is finished; re-answering requires a reset since normal flow never
// revisits a question.
func (s *QuizSession) Answer(questionID, philosophy string) {
	if s.current >= len(s.questions) {
		return
	}

	if _, exists := s.answers[questionID]; exists {
		for i, pair := range s.recorded {
			if pair[0] == questionID {
				s.recorded[i][1] = philosophy
				break
			}
		}
	} else {
		s.recorded = append(s.recorded, [2]string{questionID, philosophy})
	}
	s.answers[questionID] = philosophy

	if s.current == len(s.questions)-1 {
		s.finish()
	}
	s.current++
}

// finish tallies the recorded answers and picks the winning philosophy.
// Ties go to the first tag that reached the maximum count in answer order,
// so the winner never depends on map iteration.
func (s *QuizSession) finish() {
	counts := make(map[string]int, len(s.recorded))
	winner := ""
	best := 0
	for _, pair := range s.recorded {
		tag := pair[1]
		counts[tag]++
		if counts[tag] > best {
			best = counts[tag]
			winner = tag
		}
	}
	if winner == "" {
		return
	}

	res, ok := s.results[winner]
	if !ok {
		// Guarded against at startup by ValidateQuizData; reaching this
		// branch means the static data was never validated.
		res = models.QuizResult{Philosophy: winner}
	}
	s.result = &res
}

// Reset returns to question zero and clears all answers and the result.
func (s *QuizSession) Reset() {
	s.current = 0
	s.answers = make(map[string]string)
	s.recorded = nil
	s.result = nil
}

// ValidateQuizData checks that every option's philosophy tag has a results
// table entry. A missing entry is a configuration error and must surface at
// startup, not when a reader completes the quiz.
func ValidateQuizData(questions []models.QuizQuestion, results map[string]models.QuizResult) error {
	for _, q := range questions {
		if len(q.Options) == 0 {
			return fmt.Errorf("quiz question %q has no options", q.ID)
		}
		for _, opt := range q.Options {
			if opt.Philosophy == "" {
				return fmt.Errorf("quiz question %q option %q has no philosophy tag", q.ID, opt.ID)
			}
			if _, ok := results[opt.Philosophy]; !ok {
				return fmt.Errorf("philosophy tag %q (question %q) has no results entry", opt.Philosophy, q.ID)
			}
		}
	}
	return nil
}
