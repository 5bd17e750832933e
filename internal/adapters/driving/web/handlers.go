package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// askRequest is the input for POST /api/ask.
type askRequest struct {
	Question       string `json:"question"`
	Category       string `json:"category,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// sourceJSON is one citation in an answer.
type sourceJSON struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	RelPath    string  `json:"rel_path"`
	Page       int     `json:"page,omitempty"`
	Preview    string  `json:"preview,omitempty"`
	Score      float64 `json:"score"`
}

// askResponse is the output of POST /api/ask. The conversation ID is
// echoed back so the page can continue the same conversation.
type askResponse struct {
	ConversationID string       `json:"conversation_id"`
	Answer         string       `json:"answer"`
	Model          string       `json:"model,omitempty"`
	Sources        []sourceJSON `json:"sources"`
}

// statusResponse is the output of GET /api/status. Indexed is false
// until the first generation is built.
type statusResponse struct {
	Indexed          bool           `json:"indexed"`
	Running          bool           `json:"running"`
	Generation       string         `json:"generation,omitempty"`
	BuiltAt          string         `json:"built_at,omitempty"`
	DocumentCount    int            `json:"document_count"`
	ChunkCount       int            `json:"chunk_count"`
	Categories       map[string]int `json:"categories,omitempty"`
	EmbeddingModel   string         `json:"embedding_model,omitempty"`
	LastReindexError string         `json:"last_reindex_error,omitempty"`
}

// reindexResponse is the output of POST /api/reindex.
type reindexResponse struct {
	Status string `json:"status"`
}

// documentJSON is one entry in the document listing.
type documentJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	RelPath  string `json:"rel_path"`
	Pages    int    `json:"pages"`
}

// errorResponse is the JSON error envelope for all API failures.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // Response already committed
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	ctx := r.Context()

	conversationID := req.ConversationID
	if conversationID == "" {
		conv, err := s.ports.Chat.StartConversation(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "starting conversation: "+err.Error())
			return
		}
		conversationID = conv.ID
	}

	opts := domain.QueryOptions{Category: req.Category}
	answer, err := s.ports.Chat.Ask(ctx, conversationID, req.Question, opts)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "ask failed: "+err.Error())
		return
	}

	resp := askResponse{
		ConversationID: conversationID,
		Answer:         answer.Text,
		Model:          answer.Model,
		Sources:        make([]sourceJSON, 0, len(answer.Sources)),
	}
	for i := range answer.Sources {
		src := answer.Sources[i]
		resp.Sources = append(resp.Sources, sourceJSON{
			DocumentID: src.DocumentID,
			Title:      src.Title,
			Category:   src.Category,
			RelPath:    src.RelPath,
			Page:       src.Page,
			Preview:    src.Preview,
			Score:      src.Score,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.ports.Index.Running() {
		writeError(w, http.StatusConflict, "a rebuild is already in progress")
		return
	}

	// Rebuilds outlive the request; completion shows up via /api/status.
	// The service enforces single-flight, so a lost race here surfaces
	// as ErrReindexRunning and is not recorded as a failure.
	go func() {
		_, err := s.ports.Index.Reindex(context.Background())

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil && !errors.Is(err, domain.ErrReindexRunning) {
			s.lastReindexErr = err.Error()
		} else if err == nil {
			s.lastReindexErr = ""
		}
	}()

	writeJSON(w, http.StatusAccepted, reindexResponse{Status: "started"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := statusResponse{Running: s.ports.Index.Running()}
	s.mu.Lock()
	resp.LastReindexError = s.lastReindexErr
	s.mu.Unlock()

	status, err := s.ports.Index.Status(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIndexEmpty) {
			writeJSON(w, http.StatusOK, resp)
			return
		}
		writeError(w, http.StatusInternalServerError, "getting status: "+err.Error())
		return
	}

	resp.Indexed = true
	resp.Generation = status.Generation
	resp.BuiltAt = status.BuiltAt.Format(time.RFC3339)
	resp.DocumentCount = status.DocumentCount
	resp.ChunkCount = status.ChunkCount
	resp.Categories = status.Categories
	resp.EmbeddingModel = status.EmbeddingModel

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status, err := s.ports.Index.Status(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIndexEmpty) {
			writeJSON(w, http.StatusOK, []string{})
			return
		}
		writeError(w, http.StatusInternalServerError, "getting categories: "+err.Error())
		return
	}

	names := make([]string, 0, len(status.Categories))
	for name := range status.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.ports.Document == nil {
		writeJSON(w, http.StatusOK, []documentJSON{})
		return
	}

	category := r.URL.Query().Get("category")
	docs, err := s.ports.Document.List(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing documents: "+err.Error())
		return
	}

	out := make([]documentJSON, 0, len(docs))
	for i := range docs {
		out = append(out, documentJSON{
			ID:       docs[i].ID,
			Title:    docs[i].Title,
			Category: docs[i].Category,
			RelPath:  docs[i].RelPath,
			Pages:    docs[i].Pages,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
