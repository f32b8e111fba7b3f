package quiz

import (
	"math"

	"studybuddy-service/internal/domain"
)

// Grade scores an attempt against a quiz. Selections are keyed by zero-based
// question position; a selection counts correct only when present and equal
// to the question's correct index. Absent selections are reported as
// unanswered rather than conflated with a wrong pick.
//
// Grading only reads normalized data, so it cannot fail. It is deterministic
// and idempotent for a fixed (quiz, selections) pair.
func Grade(q domain.Quiz, selections map[int]int) domain.GradedResult {
	result := domain.GradedResult{
		Topic:       q.Topic,
		Total:       len(q.Questions),
		PerQuestion: make([]domain.QuestionResult, 0, len(q.Questions)),
	}

	for i, question := range q.Questions {
		selected, answered := selections[i]
		if !answered {
			selected = domain.NoSelection
		}
		correct := answered && selected == question.CorrectIndex
		if correct {
			result.Score++
		}
		result.PerQuestion = append(result.PerQuestion, domain.QuestionResult{
			Question:      question.Text,
			SelectedIndex: selected,
			CorrectIndex:  question.CorrectIndex,
			Correct:       correct,
			Options:       question.Options,
		})
	}

	if result.Total > 0 {
		// Round half up.
		result.Percentage = int(math.Floor(float64(result.Score)/float64(result.Total)*100 + 0.5))
	}
	return result
}
