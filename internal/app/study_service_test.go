package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studybuddy-service/internal/domain"
	"studybuddy-service/internal/infra/memory"
	"studybuddy-service/internal/llm"
)

func newTestService(provider *llm.MockProvider) *StudyService {
	return NewStudyService(provider, memory.NewSessionStore(), memory.NewResultStore())
}

const freeTextQuiz = `1. What does CPU stand for?
A) Central Processing Unit
B) Computer Personal Unit
C) Central Print Unit
D) Control Processing Unit
Correct: A

2. Which planet is known as the Red Planet?
A) Venus
B) Mars
C) Jupiter
D) Saturn
Correct: B`

func TestGenerateQuizParsesFreeText(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: freeTextQuiz})
	svc := newTestService(provider)

	quiz, err := svc.GenerateQuiz(context.Background(), "u1", domain.QuizRequest{
		Topic:          "general knowledge",
		RequestedCount: 2,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	if quiz.Questions[0].CorrectIndex != 0 || quiz.Questions[1].CorrectIndex != 1 {
		t.Fatalf("answers misparsed: %+v", quiz.Questions)
	}
	if quiz.Questions[0].ID != 1 || quiz.Questions[1].ID != 2 {
		t.Fatalf("ids not sequential: %+v", quiz.Questions)
	}

	active, ok, err := svc.ActiveQuiz(context.Background(), "u1")
	if err != nil || !ok {
		t.Fatalf("expected active quiz, ok=%v err=%v", ok, err)
	}
	if active.Topic != "general knowledge" {
		t.Fatalf("unexpected active quiz %+v", active)
	}
}

func TestGenerateQuizStructuredPayload(t *testing.T) {
	payload := `[{"id":7,"question":"2+2?","options":["3","4","5","6"],"correctAnswer":1}]`
	provider := llm.NewMockProvider(llm.Reply{Text: payload})
	svc := newTestService(provider)

	quiz, err := svc.GenerateQuiz(context.Background(), "u1", domain.QuizRequest{
		Topic:          "math",
		RequestedCount: 1,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.ID != 1 {
		t.Fatalf("id should be reassigned to 1, got %d", q.ID)
	}
	if q.CorrectIndex != 1 || q.Text != "2+2?" {
		t.Fatalf("structured payload mangled: %+v", q)
	}
}

func TestGenerateQuizValidation(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())
	ctx := context.Background()

	if _, err := svc.GenerateQuiz(ctx, "u1", domain.QuizRequest{Topic: "  ", RequestedCount: 5}); !errors.Is(err, domain.ErrEmptyTopic) {
		t.Fatalf("expected ErrEmptyTopic, got %v", err)
	}
	if _, err := svc.GenerateQuiz(ctx, "u1", domain.QuizRequest{Topic: "go", RequestedCount: 0}); !errors.Is(err, domain.ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount for 0, got %v", err)
	}
	if _, err := svc.GenerateQuiz(ctx, "u1", domain.QuizRequest{Topic: "go", RequestedCount: 21}); !errors.Is(err, domain.ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount for 21, got %v", err)
	}
}

func TestGenerateQuizNoUsableQuestions(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: "Sorry, I cannot help with that."})
	svc := newTestService(provider)

	_, err := svc.GenerateQuiz(context.Background(), "u1", domain.QuizRequest{
		Topic:          "go",
		RequestedCount: 3,
	})
	if !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if _, ok, _ := svc.ActiveQuiz(context.Background(), "u1"); ok {
		t.Fatalf("failed generation must not leave an active quiz")
	}
}

func TestGenerateQuizDefaultsDifficulty(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: freeTextQuiz})
	svc := newTestService(provider)

	if _, err := svc.GenerateQuiz(context.Background(), "u1", domain.QuizRequest{
		Topic:          "go",
		RequestedCount: 2,
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(provider.Calls) != 1 {
		t.Fatalf("expected one backend call, got %d", len(provider.Calls))
	}
	if !strings.Contains(provider.Calls[0].Prompt, "medium") {
		t.Fatalf("difficulty should default to medium, prompt was:\n%s", provider.Calls[0].Prompt)
	}
}

func TestChatUsesBackendReply(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: "A slice is a view over an array."})
	svc := newTestService(provider)

	reply, err := svc.Chat(context.Background(), "u1", "What is a slice?", ModeExplain)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply.Offline {
		t.Fatalf("expected online reply")
	}
	if reply.Text != "A slice is a view over an array." {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
	if provider.Calls[0].Temperature != 0.7 || provider.Calls[0].MaxTokens != 1024 {
		t.Fatalf("explain mode profile not applied: %+v", provider.Calls[0])
	}
}

func TestChatFallsBackOffline(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Err: &llm.ErrUnavailable{Err: errors.New("boom")}})
	svc := newTestService(provider)

	reply, err := svc.Chat(context.Background(), "u1", "help me", ModeCode)
	if err != nil {
		t.Fatalf("chat must not error on backend failure: %v", err)
	}
	if !reply.Offline {
		t.Fatalf("expected offline reply")
	}
	if !strings.Contains(reply.Text, `"help me"`) {
		t.Fatalf("offline reply should echo the message, got %q", reply.Text)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())

	if _, err := svc.Chat(context.Background(), "u1", "   ", ModeGeneral); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSubmitAttemptGradesAndStores(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: freeTextQuiz})
	svc := newTestService(provider)
	ctx := context.Background()

	if _, err := svc.GenerateQuiz(ctx, "u1", domain.QuizRequest{Topic: "gk", RequestedCount: 2}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	result, err := svc.SubmitAttempt(ctx, "u1", map[int]int{0: 0, 1: 3})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 || result.Total != 2 || result.Percentage != 50 {
		t.Fatalf("unexpected grading %+v", result)
	}

	history, err := svc.History(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Score != 1 {
		t.Fatalf("result not recorded: %+v", history)
	}
}

func TestSubmitWithoutActiveQuiz(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())

	if _, err := svc.SubmitAttempt(context.Background(), "u1", map[int]int{0: 1}); !errors.Is(err, domain.ErrNoActiveQuiz) {
		t.Fatalf("expected ErrNoActiveQuiz, got %v", err)
	}
}

func TestRestartQuizClearsSession(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: freeTextQuiz})
	svc := newTestService(provider)
	ctx := context.Background()

	if _, err := svc.GenerateQuiz(ctx, "u1", domain.QuizRequest{Topic: "gk", RequestedCount: 2}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := svc.RestartQuiz(ctx, "u1"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, ok, _ := svc.ActiveQuiz(ctx, "u1"); ok {
		t.Fatalf("expected no active quiz after restart")
	}
}

func TestAnalyzeDocumentUsesContent(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: "Solid essay, tighten the intro."})
	svc := newTestService(provider)

	body := strings.Repeat("The mitochondria is the powerhouse of the cell. ", 5)
	analysis, err := svc.AnalyzeDocument(context.Background(), "u1", domain.DocumentUpload{
		Name:         "essay.txt",
		ContentType:  "text/plain",
		Size:         int64(len(body)),
		Data:         []byte(body),
		Instructions: "Check the biology claims",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis != "Solid essay, tighten the intro." {
		t.Fatalf("unexpected analysis %q", analysis)
	}

	prompt := provider.Calls[0].Prompt
	if !strings.Contains(prompt, "mitochondria") {
		t.Fatalf("document content missing from prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Check the biology claims") {
		t.Fatalf("instructions missing from prompt:\n%s", prompt)
	}
	if provider.Calls[0].MaxTokens != 2048 {
		t.Fatalf("document mode token budget not applied: %d", provider.Calls[0].MaxTokens)
	}
}

func TestAnalyzeDocumentFallsBackToMetadata(t *testing.T) {
	provider := llm.NewMockProvider(llm.Reply{Text: "General guidance for PNG files."})
	svc := newTestService(provider)

	_, err := svc.AnalyzeDocument(context.Background(), "u1", domain.DocumentUpload{
		Name:        "diagram.png",
		ContentType: "image/png",
		Size:        4,
		Data:        []byte{0x89, 'P', 'N', 'G'},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	prompt := provider.Calls[0].Prompt
	if !strings.Contains(prompt, "could not be read") {
		t.Fatalf("expected metadata prompt, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "diagram.png") {
		t.Fatalf("metadata prompt should name the file:\n%s", prompt)
	}
}

func TestAnalyzeDocumentRejectsEmpty(t *testing.T) {
	svc := newTestService(llm.NewMockProvider())

	_, err := svc.AnalyzeDocument(context.Background(), "u1", domain.DocumentUpload{Name: "empty.txt"})
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}
