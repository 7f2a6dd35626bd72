package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/nuanxinlab/heartchat-go/internal/analysis/match"
	"github.com/nuanxinlab/heartchat-go/internal/model/chat"
	"github.com/nuanxinlab/heartchat-go/internal/model/therapist"
	"github.com/nuanxinlab/heartchat-go/internal/service/reply"
	"github.com/nuanxinlab/heartchat-go/internal/service/session"
	"github.com/nuanxinlab/heartchat-go/pkg/utils"
)

const recommendationLimit = 3

// Handler serves the chat turn endpoint.
type Handler struct {
	therapists therapist.Store
	sessions   *session.Service
	replies    *reply.Service
}

// New creates the dev server handler.
func New(therapists therapist.Store, sessions *session.Service, replies *reply.Service) *Handler {
	return &Handler{
		therapists: therapists,
		sessions:   sessions,
		replies:    replies,
	}
}

type tokenPayload struct {
	Delta string `json:"delta"`
}

type errorPayload struct {
	Detail string `json:"detail"`
}

func (h *Handler) handleListTherapists(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.therapists.List())
}

func (h *Handler) handleGetTherapist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "therapistID")
	entry, ok := h.therapists.FindByID(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "therapist not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.Locale == "" {
		req.Locale = chat.DefaultLocale
	}

	ctx := r.Context()
	sess, created := h.sessions.Ensure(ctx, req.SessionID, req.UserID, req.Locale)
	if created {
		log.Printf("[devserver] provisioned session=%s for user=%s", sess.ID, req.UserID)
	}

	history, err := h.sessions.Transcript(ctx, sess.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}
	if err := h.sessions.Append(ctx, sess.ID, chat.RoleUser, req.Message); err != nil {
		log.Printf("[devserver] failed to save user message: %v", err)
	}

	matches := match.Rank(req.Message, h.therapists.List(), recommendationLimit)
	recommendations := buildRecommendations(matches)
	highlights := buildHighlights(req.Message, matches)

	flusher, canFlush := w.(http.Flusher)
	if req.EnableStreaming && canFlush {
		h.streamTurn(ctx, w, flusher, sess, req, history, recommendations, highlights)
		return
	}

	h.documentTurn(ctx, w, sess, req, history, recommendations, highlights)
}

// streamTurn emits the wire sequence of one turn: session_established, the
// reply as token records, and a terminal complete (or error) record.
func (h *Handler) streamTurn(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sess session.Session, req chat.TurnRequest, history []session.Entry, recommendations []chat.Recommendation, highlights []chat.MemoryHighlight) {
	utils.SetupSSEHeaders(w)

	// Comment preamble; clients ignore it per the record grammar.
	utils.SendSSEComment(w, flusher, "stream established")

	utils.SendSSEEvent(w, flusher, "session_established", chat.SessionInfo{
		SessionID:        sess.ID,
		Recommendations:  recommendations,
		MemoryHighlights: highlights,
		ResolvedLocale:   req.Locale,
	})

	content, err := h.streamReply(ctx, w, flusher, req, history, recommendations)
	if err != nil {
		log.Printf("[devserver] reply generation failed: %v", err)
		utils.SendSSEEvent(w, flusher, "error", errorPayload{Detail: "reply generation failed"})
		return
	}

	if err := h.sessions.Append(ctx, sess.ID, chat.RoleAssistant, content); err != nil {
		log.Printf("[devserver] failed to save assistant message: %v", err)
	}

	utils.SendSSEEvent(w, flusher, "complete", h.buildTurn(sess, req, content, recommendations, highlights))
	log.Printf("[devserver] completed streamed turn for session=%s", sess.ID)
}

// streamReply writes token records as deltas become available and returns the
// assembled reply text.
func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, req chat.TurnRequest, history []session.Entry, recommendations []chat.Recommendation) (string, error) {
	if !h.replies.ModelBacked() {
		content := reply.Scripted(req.Locale, req.Message, topSpecialty(recommendations))
		for _, token := range reply.SplitTokens(content) {
			utils.SendSSEEvent(w, flusher, "token", tokenPayload{Delta: token})
		}
		return content, nil
	}

	stream, err := h.replies.Stream(ctx, history, req.Message)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			utils.SendSSEEvent(w, flusher, "token", tokenPayload{Delta: chunk.Content})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// documentTurn answers with the whole turn as one JSON document.
func (h *Handler) documentTurn(ctx context.Context, w http.ResponseWriter, sess session.Session, req chat.TurnRequest, history []session.Entry, recommendations []chat.Recommendation, highlights []chat.MemoryHighlight) {
	var content string
	if h.replies.ModelBacked() {
		response, err := h.replies.Generate(ctx, history, req.Message)
		if err != nil {
			log.Printf("[devserver] reply generation failed: %v", err)
			utils.RespondError(w, http.StatusBadGateway, "reply generation failed")
			return
		}
		content = response.Content
	} else {
		content = reply.Scripted(req.Locale, req.Message, topSpecialty(recommendations))
	}

	if err := h.sessions.Append(ctx, sess.ID, chat.RoleAssistant, content); err != nil {
		log.Printf("[devserver] failed to save assistant message: %v", err)
	}

	utils.RespondJSON(w, http.StatusOK, h.buildTurn(sess, req, content, recommendations, highlights))
}

func (h *Handler) buildTurn(sess session.Session, req chat.TurnRequest, content string, recommendations []chat.Recommendation, highlights []chat.MemoryHighlight) chat.TurnResponse {
	ids := make([]string, 0, len(recommendations))
	for _, rec := range recommendations {
		ids = append(ids, rec.TherapistID)
	}

	return chat.TurnResponse{
		SessionID: sess.ID,
		Reply: chat.Message{
			Role:      chat.RoleAssistant,
			Content:   content,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
		RecommendedTherapistIDs: ids,
		Recommendations:         recommendations,
		MemoryHighlights:        highlights,
		ResolvedLocale:          req.Locale,
	}
}

func buildRecommendations(matches []match.Result) []chat.Recommendation {
	recommendations := make([]chat.Recommendation, 0, len(matches))
	for i, m := range matches {
		recommendations = append(recommendations, chat.Recommendation{
			TherapistID:     m.Therapist.ID,
			Name:            m.Therapist.Name,
			Title:           m.Therapist.Title,
			Specialties:     m.Therapist.Specialties,
			Languages:       m.Therapist.Languages,
			PricePerSession: m.Therapist.PricePerSession,
			Currency:        m.Therapist.Currency,
			IsRecommended:   i == 0,
			Score:           m.Score,
			Reason:          m.Reason,
			MatchedKeywords: m.Matched,
		})
	}
	return recommendations
}

// buildHighlights derives one memory highlight per turn from the user
// message and its matched keywords.
func buildHighlights(message string, matches []match.Result) []chat.MemoryHighlight {
	keywords := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, m := range matches {
		for _, word := range m.Matched {
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			keywords = append(keywords, word)
		}
	}

	summary := message
	if runes := []rune(summary); len(runes) > 40 {
		summary = string(runes[:40]) + "…"
	}

	return []chat.MemoryHighlight{{Summary: summary, Keywords: keywords}}
}

func topSpecialty(recommendations []chat.Recommendation) string {
	if len(recommendations) == 0 || len(recommendations[0].Specialties) == 0 {
		return ""
	}
	return recommendations[0].Specialties[0]
}
