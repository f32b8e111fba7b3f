package domain

import "errors"

var (
	// ErrEmptyMessage is returned when a chat message is blank.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrEmptyTopic is returned when a quiz is requested without a topic.
	ErrEmptyTopic = errors.New("quiz topic is required")
	// ErrInvalidCount is returned when the requested question count is out of range.
	ErrInvalidCount = errors.New("question count must be between 1 and 20")
	// ErrNoQuestions indicates the generated payload yielded zero usable questions.
	ErrNoQuestions = errors.New("no questions could be generated")
	// ErrNoActiveQuiz is returned when an attempt is submitted with no quiz in session.
	ErrNoActiveQuiz = errors.New("no active quiz")
	// ErrEmptyDocument is returned when an uploaded file has no content.
	ErrEmptyDocument = errors.New("document is empty")
)
