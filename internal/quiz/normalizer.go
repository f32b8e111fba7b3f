package quiz

import (
	"strings"

	"studybuddy-service/internal/domain"
)

// Normalize enforces the fixed question shape on parser output: exactly
// domain.OptionCount options per question (padded with positional
// placeholders, surplus dropped), a correct index that always resolves
// (unresolved declarations default to the first option), and at most
// requestedCount questions with IDs reassigned 1..N in final order.
//
// Zero drafts yield an empty quiz, not an error; the caller decides whether
// that is user-visible. Normalize is idempotent.
func Normalize(drafts []domain.DraftQuestion, topic string, requestedCount int) domain.Quiz {
	if requestedCount < 0 {
		requestedCount = 0
	}
	count := len(drafts)
	if requestedCount < count {
		count = requestedCount
	}

	questions := make([]domain.Question, 0, count)
	for i := 0; i < count; i++ {
		draft := drafts[i]

		options := make([]string, 0, domain.OptionCount)
		for _, opt := range draft.Options {
			if len(options) == domain.OptionCount {
				break
			}
			options = append(options, opt)
		}
		for len(options) < domain.OptionCount {
			options = append(options, "Option "+string(rune('A'+len(options))))
		}

		correct := draft.CorrectIndex
		if correct < 0 || correct >= domain.OptionCount {
			// Unresolved or out-of-range declarations fall back to the first option.
			correct = 0
		}

		questions = append(questions, domain.Question{
			ID:           i + 1,
			Text:         strings.TrimSpace(draft.Text),
			Options:      options,
			CorrectIndex: correct,
		})
	}

	return domain.Quiz{
		Topic:          topic,
		Questions:      questions,
		RequestedCount: requestedCount,
	}
}

// Drafts converts already-structured questions back into drafts, so
// pre-structured payloads can take the same normalization path as parsed
// free text.
func Drafts(questions []domain.Question) []domain.DraftQuestion {
	drafts := make([]domain.DraftQuestion, 0, len(questions))
	for _, q := range questions {
		drafts = append(drafts, domain.DraftQuestion{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	return drafts
}
