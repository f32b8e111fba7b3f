package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"studybuddy-service/internal/app"
	"studybuddy-service/internal/domain"
	"studybuddy-service/internal/markup"
)

// maxUploadBytes bounds document uploads at 5 MB.
const maxUploadBytes = 5 << 20

// Handler exposes the study-assistant use cases over JSON endpoints.
type Handler struct {
	service *app.StudyService
}

func NewHandler(service *app.StudyService) *Handler {
	return &Handler{service: service}
}

// Register mounts all REST endpoints onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/chat", h.handleChat)
	mux.HandleFunc("/api/generate-quiz", h.handleGenerateQuiz)
	mux.HandleFunc("/api/submit-quiz", h.handleSubmitQuiz)
	mux.HandleFunc("/api/restart-quiz", h.handleRestartQuiz)
	mux.HandleFunc("/api/quiz-history", h.handleQuizHistory)
	mux.HandleFunc("/api/analyze-document", h.handleAnalyzeDocument)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.service.Chat(r.Context(), userID(req.UserID), req.Message, req.Mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"response":  reply.Text,
		"formatted": markup.Format(reply.Text),
		"offline":   reply.Offline,
	})
}

type generateQuizRequest struct {
	UserID string `json:"userId"`
	domain.QuizRequest
}

func (h *Handler) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req generateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.service.GenerateQuiz(r.Context(), userID(req.UserID), req.QuizRequest)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"quiz":    quiz,
	})
}

type submitQuizRequest struct {
	UserID string `json:"userId"`
	// Answers maps zero-based question position to the selected option index.
	// Keys arrive as strings because JSON object keys always do.
	Answers map[string]int `json:"answers"`
}

func (h *Handler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req submitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	selections := make(map[int]int, len(req.Answers))
	for key, sel := range req.Answers {
		pos, err := strconv.Atoi(key)
		if err != nil {
			writeError(w, http.StatusBadRequest, "answer keys must be question positions")
			return
		}
		selections[pos] = sel
	}

	result, err := h.service.SubmitAttempt(r.Context(), userID(req.UserID), selections)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

type restartQuizRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) handleRestartQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req restartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.RestartQuiz(r.Context(), userID(req.UserID)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Quiz session cleared",
	})
}

func (h *Handler) handleQuizHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.service.History(r.Context(), userID(r.URL.Query().Get("userId")), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if history == nil {
		history = []domain.GradedResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": history,
	})
}

func (h *Handler) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large (max 5MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedDocumentType(contentType) {
		writeError(w, http.StatusBadRequest, "unsupported file type: "+contentType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	analysis, err := h.service.AnalyzeDocument(r.Context(), userID(r.FormValue("userId")), domain.DocumentUpload{
		Name:         header.Filename,
		ContentType:  contentType,
		Size:         int64(len(data)),
		Data:         data,
		Instructions: r.FormValue("instructions"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"analysis":  analysis,
		"formatted": markup.Format(analysis),
		"fileName":  header.Filename,
	})
}

// allowedDocumentType mirrors the upload allow-list: PDFs, images, plain
// text, and Word documents.
func allowedDocumentType(contentType string) bool {
	switch {
	case contentType == "application/pdf",
		contentType == "text/plain",
		contentType == "application/msword",
		contentType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	case strings.HasPrefix(contentType, "image/"):
		return true
	}
	return false
}

func userID(id string) string {
	if strings.TrimSpace(id) == "" {
		return "anonymous"
	}
	return id
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyTopic),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrEmptyDocument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoActiveQuiz):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoQuestions):
		writeError(w, http.StatusBadGateway, "the model did not return usable questions, please try again")
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusBadGateway, "upstream model request failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}
