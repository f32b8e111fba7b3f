package quiz

import (
	"regexp"
	"strings"

	"studybuddy-service/internal/domain"
)

// Line classification runs in fixed priority order: question start, option,
// answer declaration, continuation. A line matches at most one class.
var (
	questionStartRe = regexp.MustCompile(`^(\d+\.|\*\*Question \d+:\*\*)`)
	ordinalRe       = regexp.MustCompile(`^\d+\.\s*`)
	questionTagRe   = regexp.MustCompile(`\*\*Question \d+:\*\*\s*`)
	optionRe        = regexp.MustCompile(`^[ABCD]\)\s*`)
)

// parserState tracks whether a draft question is currently accumulating.
type parserState int

const (
	noOpenDraft parserState = iota
	openDraft
)

// Parse converts a free-form quiz text block into draft questions, best
// effort. It never fails: malformed sections produce partial drafts and the
// normalizer fills the gaps. Empty input yields nil.
//
// A line starts a new question when it carries a numbered marker, or when it
// contains a question mark while no draft is open. Option lines ("A)".."D)")
// and answer declarations ("Correct: X") only apply while a draft is open.
// Free text before the first option extends the question prompt; free text
// after options cannot be attributed and is dropped.
func Parse(text string) []domain.DraftQuestion {
	var (
		drafts  []domain.DraftQuestion
		state   = noOpenDraft
		current domain.DraftQuestion
	)

	flush := func() {
		if state == openDraft {
			drafts = append(drafts, current)
			state = noOpenDraft
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case questionStartRe.MatchString(line) || (state == noOpenDraft && strings.Contains(line, "?")):
			flush()
			current = domain.DraftQuestion{
				Text:         stripQuestionMarkers(line),
				CorrectIndex: domain.NoAnswer,
			}
			state = openDraft
		case state == openDraft && optionRe.MatchString(line):
			current.Options = append(current.Options, strings.TrimSpace(optionRe.ReplaceAllString(line, "")))
		case state == openDraft && hasAnswerMarker(line):
			current.CorrectIndex = answerIndex(line)
		case state == openDraft && len(current.Options) == 0:
			current.Text += " " + strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		}
	}
	flush()
	return drafts
}

func stripQuestionMarkers(line string) string {
	s := ordinalRe.ReplaceAllString(line, "")
	s = questionTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}

func hasAnswerMarker(line string) bool {
	return strings.Contains(strings.ToLower(line), "correct:")
}

// answerIndex maps the declared letter after the marker to an option index.
// Anything other than a single A-D letter yields domain.NoAnswer.
func answerIndex(line string) int {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return domain.NoAnswer
	}
	letter := strings.ToUpper(strings.TrimSpace(parts[1]))
	if len(letter) != 1 {
		return domain.NoAnswer
	}
	idx := strings.Index("ABCD", letter)
	if idx < 0 {
		return domain.NoAnswer
	}
	return idx
}
