package app

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"studybuddy-service/internal/domain"
	"studybuddy-service/internal/extract"
	"studybuddy-service/internal/llm"
	quizcore "studybuddy-service/internal/quiz"
)

// SessionRepository abstracts how active quizzes are stored per user
// (in-memory, Redis, etc).
type SessionRepository interface {
	Get(ctx context.Context, userID string) (domain.Quiz, bool, error)
	Save(ctx context.Context, userID string, quiz domain.Quiz) error
	Delete(ctx context.Context, userID string) error
}

// ResultStore persists graded attempts for later review.
type ResultStore interface {
	Save(ctx context.Context, userID string, result domain.GradedResult) error
	Recent(ctx context.Context, userID string, limit int) ([]domain.GradedResult, error)
}

// StudyService contains the study-assistant use cases: chat, quiz
// generation and grading, and document analysis.
type StudyService struct {
	provider llm.Provider
	sessions SessionRepository
	results  ResultStore
	genGroup singleflight.Group
}

func NewStudyService(provider llm.Provider, sessions SessionRepository, results ResultStore) *StudyService {
	return &StudyService{provider: provider, sessions: sessions, results: results}
}

// ChatReply carries the chat outcome, flagging backend-substituted replies.
type ChatReply struct {
	Text    string
	Offline bool
}

// Chat sends a message to the model using the mode's prompt profile. The
// conversation is never left without a reply: backend failures substitute a
// deterministic offline response instead of an error.
func (s *StudyService) Chat(ctx context.Context, userID, message, mode string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, domain.ErrEmptyMessage
	}

	text, err := s.provider.Generate(ctx, chatRequest(mode, message))
	if err != nil {
		log.Printf("chat backend failed for %s: %v", userID, err)
		return ChatReply{Text: offlineReply(message, mode), Offline: true}, nil
	}
	return ChatReply{Text: text}, nil
}

// GenerateQuiz asks the model for quiz content, interprets the payload into
// a validated quiz, and makes it the user's active quiz. Concurrent
// generations for the same user are collapsed into one backend call.
//
// Unlike chat, backend failures surface to the caller; the user retries
// explicitly.
func (s *StudyService) GenerateQuiz(ctx context.Context, userID string, req domain.QuizRequest) (domain.Quiz, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return domain.Quiz{}, domain.ErrEmptyTopic
	}
	if req.RequestedCount < 1 || req.RequestedCount > 20 {
		return domain.Quiz{}, domain.ErrInvalidCount
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	result, err, _ := s.genGroup.Do(userID, func() (interface{}, error) {
		payload, err := s.provider.Generate(ctx, llm.Request{
			System:      systemPrompt(ModeQuiz),
			Prompt:      quizPrompt(req),
			MaxTokens:   maxTokens(ModeQuiz),
			Temperature: temperature(ModeQuiz),
		})
		if err != nil {
			return domain.Quiz{}, err
		}

		quiz := interpretQuizPayload(payload, req.Topic, req.RequestedCount)
		if len(quiz.Questions) == 0 {
			return domain.Quiz{}, domain.ErrNoQuestions
		}
		if err := s.sessions.Save(ctx, userID, quiz); err != nil {
			return domain.Quiz{}, err
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// interpretQuizPayload accepts either form the backend may produce: a
// pre-structured question sequence (JSON array) or a free-text blob that
// needs parsing. Both take the same normalization path.
func interpretQuizPayload(payload, topic string, requestedCount int) domain.Quiz {
	trimmed := strings.TrimSpace(payload)
	if strings.HasPrefix(trimmed, "[") {
		var structured []domain.Question
		if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
			return quizcore.Normalize(quizcore.Drafts(structured), topic, requestedCount)
		}
	}
	return quizcore.Normalize(quizcore.Parse(payload), topic, requestedCount)
}

// SubmitAttempt grades the user's selections against their active quiz and
// records the outcome. Selections are keyed by zero-based question position;
// missing keys count as unanswered.
func (s *StudyService) SubmitAttempt(ctx context.Context, userID string, selections map[int]int) (domain.GradedResult, error) {
	quiz, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return domain.GradedResult{}, err
	}
	if !ok {
		return domain.GradedResult{}, domain.ErrNoActiveQuiz
	}

	result := quizcore.Grade(quiz, selections)

	// History is best effort; a storage hiccup must not eat the result.
	if err := s.results.Save(ctx, userID, result); err != nil {
		log.Printf("saving result for %s failed: %v", userID, err)
	}
	return result, nil
}

// RestartQuiz drops the user's active quiz.
func (s *StudyService) RestartQuiz(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}

// ActiveQuiz returns the user's current quiz, if any.
func (s *StudyService) ActiveQuiz(ctx context.Context, userID string) (domain.Quiz, bool, error) {
	return s.sessions.Get(ctx, userID)
}

// History returns the user's most recent graded results, newest first.
func (s *StudyService) History(ctx context.Context, userID string, limit int) ([]domain.GradedResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.results.Recent(ctx, userID, limit)
}

// minUsableContent guards against feeding the model a handful of stray
// characters as "document content".
const minUsableContent = 50

// AnalyzeDocument runs AI analysis over an uploaded document. Text is
// extracted where the format allows it; otherwise the model works from
// metadata alone. Backend failures surface to the caller.
func (s *StudyService) AnalyzeDocument(ctx context.Context, userID string, doc domain.DocumentUpload) (string, error) {
	if len(doc.Data) == 0 {
		return "", domain.ErrEmptyDocument
	}

	content, err := extract.Text(doc)
	if err != nil {
		log.Printf("text extraction failed for %s (%s): %v", doc.Name, doc.ContentType, err)
		content = ""
	}

	var prompt string
	if len(strings.TrimSpace(content)) > minUsableContent {
		prompt = contentAnalysisPrompt(doc, content)
	} else {
		prompt = metadataAnalysisPrompt(doc)
	}

	return s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt(ModeDocument),
		Prompt:      prompt,
		MaxTokens:   maxTokens(ModeDocument),
		Temperature: temperature(ModeDocument),
	})
}
