// Package normalize maps the backend's loosely shaped payloads into the
// canonical wire model. The backend emits a mix of snake_case and camelCase
// field names depending on code path; every normalizer here accepts both and
// substitutes type-appropriate defaults for anything missing or malformed.
// Nothing in this package returns an error: a payload that decodes to garbage
// normalizes to zero values, it never fails the turn.
package normalize

import (
	"encoding/json"
	"time"

	"github.com/nuanxinlab/heartchat-go/internal/model/chat"
)

// ErrorDetailFallback is the detail text for an error event whose payload
// carries none.
const ErrorDetailFallback = "服务暂时不可用，请稍后再试"

// Payload decodes a record's data text. Valid JSON yields the decoded value;
// anything else is returned as an opaque string. Downstream shape mapping
// then falls back to defaults, since a string has no fields.
func Payload(data string) any {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return data
	}
	return v
}

// Msg normalizes one chat message. The reply slot of a turn belongs to the
// assistant, so a missing or unrecognized role defaults to assistant, and a
// missing timestamp is stamped with the current time.
func Msg(v any) chat.Message {
	m := asMap(v)
	msg := chat.Message{
		Role:      stringField(m, "role"),
		Content:   stringField(m, "content"),
		CreatedAt: stringField(m, "created_at", "createdAt"),
	}

	switch msg.Role {
	case chat.RoleUser, chat.RoleAssistant, chat.RoleSystem:
	default:
		msg.Role = chat.RoleAssistant
	}
	if msg.CreatedAt == "" {
		msg.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return msg
}

// Recommendation normalizes one therapist recommendation entry.
func Recommendation(v any) chat.Recommendation {
	m := asMap(v)
	return chat.Recommendation{
		TherapistID:     stringField(m, "therapist_id", "therapistId"),
		Name:            stringField(m, "name"),
		Title:           stringField(m, "title"),
		Specialties:     stringArrayField(m, "specialties"),
		Languages:       stringArrayField(m, "languages"),
		PricePerSession: numberField(m, "price_per_session", "pricePerSession"),
		Currency:        stringField(m, "currency"),
		IsRecommended:   boolField(m, "is_recommended", "isRecommended"),
		Score:           numberField(m, "score"),
		Reason:          stringField(m, "reason"),
		MatchedKeywords: stringArrayField(m, "matched_keywords", "matchedKeywords"),
	}
}

// Highlight normalizes one memory highlight entry.
func Highlight(v any) chat.MemoryHighlight {
	m := asMap(v)
	return chat.MemoryHighlight{
		Summary:  stringField(m, "summary"),
		Keywords: stringArrayField(m, "keywords"),
	}
}

func recommendations(v any) []chat.Recommendation {
	items := asSlice(v)
	out := make([]chat.Recommendation, 0, len(items))
	for _, item := range items {
		out = append(out, Recommendation(item))
	}
	return out
}

func highlights(v any) []chat.MemoryHighlight {
	items := asSlice(v)
	out := make([]chat.MemoryHighlight, 0, len(items))
	for _, item := range items {
		out = append(out, Highlight(item))
	}
	return out
}

// TurnResponse normalizes a complete-turn payload. Shared by the streaming
// path (complete event) and the single-document path; there is deliberately
// no second copy of this mapping anywhere.
func TurnResponse(v any) chat.TurnResponse {
	m := asMap(v)
	return chat.TurnResponse{
		SessionID:               stringField(m, "session_id", "sessionId"),
		Reply:                   Msg(field(m, "reply")),
		RecommendedTherapistIDs: stringArrayField(m, "recommended_therapist_ids", "recommendedTherapistIds"),
		Recommendations:         recommendations(field(m, "recommendations")),
		MemoryHighlights:        highlights(field(m, "memory_highlights", "memoryHighlights")),
		ResolvedLocale:          stringField(m, "resolved_locale", "locale", "resolvedLocale"),
	}
}

// SessionInfo normalizes a session_established payload.
func SessionInfo(v any) chat.SessionInfo {
	m := asMap(v)
	return chat.SessionInfo{
		SessionID:        stringField(m, "session_id", "sessionId"),
		Recommendations:  recommendations(field(m, "recommendations")),
		MemoryHighlights: highlights(field(m, "memory_highlights", "memoryHighlights")),
		ResolvedLocale:   stringField(m, "resolved_locale", "locale", "resolvedLocale"),
	}
}

// Delta extracts a token event's incremental text, defaulting to "".
func Delta(v any) string {
	return stringField(asMap(v), "delta")
}

// Detail extracts an error event's human-readable detail. An error event with
// no usable detail still needs to say something to the user.
func Detail(v any) string {
	if d := stringField(asMap(v), "detail"); d != "" {
		return d
	}
	// An error payload that is a bare string is its own detail.
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return ErrorDetailFallback
}
