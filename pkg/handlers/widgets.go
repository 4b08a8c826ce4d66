package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"philoblog/pkg/services"
)

// Widget state lives in the cookie session, keyed per article or widget
// instance, and is stored as plain strings so no gob registration is
// needed. Each endpoint rebuilds the pure state machine from the session,
// applies one transition and writes the state back.

const quizSessionKey = "quiz"

func diveSessionKey(postID string) string {
	return "dives:" + postID
}

func experimentSessionKey(expID string) string {
	return "exp:" + expID
}

func expandedDives(c *gin.Context, postID string) []string {
	raw, _ := sessions.Default(c).Get(diveSessionKey(postID)).(string)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// ToggleDive re-renders the article's document, applies the session's
// expand state, flips the requested dive and persists the new state.
// Toggling one dive never disturbs the others.
func ToggleDive(c *gin.Context) {
	id := c.Param("id")
	diveID := c.PostForm("dive_id")

	post, err := services.FetchPost(c.Request.Context(), id)
	if err != nil {
		renderError(c, http.StatusNotFound, err.Error())
		return
	}

	doc := services.Render(post.Content)
	services.ApplyExpanded(doc, expandedDives(c, post.Key()))
	services.ToggleDive(doc, diveID)

	session := sessions.Default(c)
	session.Set(diveSessionKey(post.Key()), strings.Join(services.ExpandedIDs(doc), ","))
	_ = session.Save()

	c.Redirect(http.StatusFound, "/article/"+id+"#"+diveID)
}

func experimentFromSession(c *gin.Context, expID string) *services.ExperimentState {
	selected, _ := sessions.Default(c).Get(experimentSessionKey(expID)).(string)
	return &services.ExperimentState{
		SelectedChoiceID: selected,
		Revealed:         selected != "",
	}
}

// AnswerExperiment records the reader's choice and reveals the analysis.
func AnswerExperiment(c *gin.Context) {
	id := c.Param("id")
	expID := c.PostForm("experiment_id")
	choiceID := c.PostForm("choice_id")

	exp := services.FindExperiment(expID)
	if exp == nil || choiceID == "" {
		c.Redirect(http.StatusFound, "/article/"+id+"#experiment")
		return
	}

	state := experimentFromSession(c, expID)
	state.SelectChoice(choiceID)

	session := sessions.Default(c)
	session.Set(experimentSessionKey(expID), state.SelectedChoiceID)
	_ = session.Save()

	c.Redirect(http.StatusFound, "/article/"+id+"#experiment")
}

// ResetExperiment returns the widget to its unanswered state.
func ResetExperiment(c *gin.Context) {
	id := c.Param("id")
	expID := c.PostForm("experiment_id")

	state := experimentFromSession(c, expID)
	state.Reset()

	session := sessions.Default(c)
	session.Set(experimentSessionKey(expID), "")
	_ = session.Save()

	c.Redirect(http.StatusFound, "/article/"+id+"#experiment")
}

// quizFromSession rebuilds the quiz state machine by replaying the
// session's recorded answers in order. Replaying the final answer recomputes
// the result, so a finished quiz round-trips cleanly.
func quizFromSession(c *gin.Context) *services.QuizSession {
	quiz := services.NewQuizSession(services.QuizQuestions, services.QuizResults)

	raw, _ := sessions.Default(c).Get(quizSessionKey).(string)
	if raw == "" {
		return quiz
	}
	for _, line := range strings.Split(raw, "\n") {
		if qid, tag, ok := strings.Cut(line, "="); ok {
			quiz.Answer(qid, tag)
		}
	}
	return quiz
}

func saveQuiz(c *gin.Context, quiz *services.QuizSession) {
	lines := make([]string, 0, len(quiz.Answers()))
	for _, pair := range quiz.Answers() {
		lines = append(lines, pair[0]+"="+pair[1])
	}
	session := sessions.Default(c)
	session.Set(quizSessionKey, strings.Join(lines, "\n"))
	_ = session.Save()
}

// AnswerQuiz records one answer and advances; answering the last question
// computes the result.
func AnswerQuiz(c *gin.Context) {
	id := c.Param("id")
	questionID := c.PostForm("question_id")
	philosophy := c.PostForm("philosophy")

	quiz := quizFromSession(c)
	current := quiz.Current()
	if current == nil || current.ID != questionID || philosophy == "" {
		// Stale or replayed form; leave the quiz as it is.
		c.Redirect(http.StatusFound, "/article/"+id+"#quiz")
		return
	}

	quiz.Answer(questionID, philosophy)
	saveQuiz(c, quiz)

	c.Redirect(http.StatusFound, "/article/"+id+"#quiz")
}

// ResetQuiz clears all answers and the result.
func ResetQuiz(c *gin.Context) {
	id := c.Param("id")

	quiz := quizFromSession(c)
	quiz.Reset()
	saveQuiz(c, quiz)

	c.Redirect(http.StatusFound, "/article/"+id+"#quiz")
}
