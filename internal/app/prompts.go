package app

import (
	"fmt"
	"strings"

	"studybuddy-service/internal/domain"
	"studybuddy-service/internal/llm"
)

// Chat modes steer the system prompt, temperature, and token budget.
const (
	ModeGeneral   = "general"
	ModeCode      = "code"
	ModeExplain   = "explain"
	ModeQuiz      = "quiz"
	ModeSummarize = "summarize"
	ModeDocument  = "document"
)

var systemPrompts = map[string]string{
	ModeCode: "You are an expert programming assistant. Provide clear, concise code help with explanations. " +
		"If there are errors, explain what's wrong and how to fix them. " +
		"If it's a concept, explain it with examples.",
	ModeExplain: "You are a patient teacher. Explain this concept in simple, easy-to-understand terms. " +
		"Use analogies and real-world examples. Break down complex ideas into smaller parts.",
	ModeQuiz: "You are a quiz master. Create clear, fair, and educational questions. " +
		"Ensure questions test understanding and options are well-distracted.",
	ModeDocument: "You are a professional document analyst. Provide thorough, constructive, and actionable feedback. " +
		"Be specific about strengths and areas for improvement with concrete examples.",
	ModeSummarize: "You are a summarization expert. Extract key information and present it clearly. " +
		"Maintain the original meaning while being concise.",
}

const defaultSystemPrompt = "You are a helpful AI study buddy. Provide accurate, educational, and engaging responses. " +
	"Be clear and supportive in your explanations."

func systemPrompt(mode string) string {
	if p, ok := systemPrompts[mode]; ok {
		return p
	}
	return defaultSystemPrompt
}

func temperature(mode string) float64 {
	switch mode {
	case ModeCode, ModeQuiz:
		return 0.2
	default:
		return 0.7
	}
}

func maxTokens(mode string) int {
	switch mode {
	case ModeSummarize, ModeDocument:
		return 2048
	case ModeQuiz:
		return 4096
	default:
		return 1024
	}
}

func chatRequest(mode, prompt string) llm.Request {
	return llm.Request{
		System:      systemPrompt(mode),
		Prompt:      prompt,
		MaxTokens:   maxTokens(mode),
		Temperature: temperature(mode),
	}
}

// offlineReplies keeps the conversation alive when the backend is down.
// Deterministic on purpose; the transport flags these as offline mode.
var offlineReplies = map[string]string{
	ModeGeneral: "I understand you're asking about: %q. This is a fallback response since the AI service is currently unavailable. " +
		"In a real scenario, I would provide a detailed, helpful answer to your question.",
	ModeCode: "Regarding your code question about: %q. I'd be happy to help you with this programming concept! " +
		"Since I'm in offline mode, I recommend checking official documentation or trying the code in your development environment.",
	ModeExplain: "You want me to explain: %q. This is an important concept! While I'm currently in offline mode, " +
		"I suggest looking for reliable educational resources that can provide the detailed explanation you're looking for.",
	ModeQuiz: "You mentioned: %q. For quiz-related questions, I can help generate practice questions or explain quiz concepts. " +
		"Please try the quiz tool for interactive quiz generation.",
	ModeSummarize: "You asked me to summarize: %q. Summarization is one of my key features! " +
		"In online mode, I would provide a concise summary highlighting the main points and key information.",
}

func offlineReply(message, mode string) string {
	tmpl, ok := offlineReplies[mode]
	if !ok {
		tmpl = offlineReplies[ModeGeneral]
	}
	return fmt.Sprintf(tmpl, message)
}

func quizPrompt(req domain.QuizRequest) string {
	return fmt.Sprintf(`Generate a %d-question multiple choice quiz on the topic: %q.
Difficulty level: %s.

Format requirements:
- Each question should be clear and concise
- Provide exactly 4 options (A, B, C, D) for each question
- Mark the correct answer clearly
- Questions should test understanding, not just memorization
- Make options plausible but distinct

Format each question like this:
Question: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
Correct: [A/B/C/D]

Generate exactly %d questions.`, req.RequestedCount, req.Topic, req.Difficulty, req.RequestedCount)
}

// maxDocumentChars bounds how much extracted content goes into the prompt.
const maxDocumentChars = 12000

func contentAnalysisPrompt(doc domain.DocumentUpload, content string) string {
	instructions := doc.Instructions
	if strings.TrimSpace(instructions) == "" {
		instructions = "Provide general analysis and feedback"
	}
	if len(content) > maxDocumentChars {
		content = content[:maxDocumentChars] + "\n\n[Content truncated for length...]"
	}
	return fmt.Sprintf(`Analyze this document and provide detailed feedback based on the user's instructions.

===== USER INSTRUCTIONS =====
%q

===== DOCUMENT =====
Filename: %s
Filetype: %s
Filesize: %d bytes

CONTENT:
%s

===== ANALYSIS REQUEST =====
Provide a comprehensive analysis covering:
1. Content summary: main topics, purpose, and target audience.
2. Quality assessment: strengths, weaknesses, clarity, and structure.
3. Specific feedback addressing the instructions above, with actionable recommendations and concrete examples.
4. Professional recommendations: best practices and enhancement opportunities.`,
		instructions, doc.Name, doc.ContentType, doc.Size, content)
}

func metadataAnalysisPrompt(doc domain.DocumentUpload) string {
	instructions := doc.Instructions
	if strings.TrimSpace(instructions) == "" {
		instructions = "Provide general document feedback"
	}
	return fmt.Sprintf(`Provide detailed feedback on a document whose content could not be read directly.

===== DOCUMENT INFORMATION =====
- Filename: %s
- Filetype: %s
- Size: %d bytes
- User instructions: %q

===== ANALYSIS REQUEST =====
Provide comprehensive guidance covering:
1. Best practices and expected structure for %s files.
2. Key elements this kind of document should include and how to organize them.
3. Common issues to avoid and enhancement opportunities.
4. Specific, actionable advice addressing the user's instructions.`,
		doc.Name, doc.ContentType, doc.Size, instructions, doc.ContentType)
}
