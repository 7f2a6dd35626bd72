package normalize

import (
	"reflect"
	"testing"
	"time"
)

func TestPayloadDecodesJSON(t *testing.T) {
	v := Payload(`{"session_id":"s1"}`)
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if m["session_id"] != "s1" {
		t.Fatalf("unexpected decode: %v", m)
	}
}

func TestPayloadFallsBackToOpaqueString(t *testing.T) {
	v := Payload("not json at all {")
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T", v)
	}
	if s != "not json at all {" {
		t.Fatalf("unexpected value: %q", s)
	}
}

func TestTurnResponseSnakeAndCamelVariants(t *testing.T) {
	snake := TurnResponse(Payload(`{
		"session_id": "s1",
		"reply": {"role": "assistant", "content": "你好", "created_at": "2026-08-01T00:00:00Z"},
		"recommended_therapist_ids": ["t1", "t2"],
		"memory_highlights": [{"summary": "焦虑", "keywords": ["工作"]}],
		"resolved_locale": "zh-CN"
	}`))
	camel := TurnResponse(Payload(`{
		"sessionId": "s1",
		"reply": {"role": "assistant", "content": "你好", "createdAt": "2026-08-01T00:00:00Z"},
		"recommendedTherapistIds": ["t1", "t2"],
		"memoryHighlights": [{"summary": "焦虑", "keywords": ["工作"]}],
		"resolvedLocale": "zh-CN"
	}`))

	if !reflect.DeepEqual(snake, camel) {
		t.Fatalf("naming variants diverged:\nsnake: %+v\ncamel: %+v", snake, camel)
	}
	if snake.SessionID != "s1" || snake.Reply.Content != "你好" {
		t.Fatalf("unexpected normalization: %+v", snake)
	}
	if len(snake.MemoryHighlights) != 1 || snake.MemoryHighlights[0].Summary != "焦虑" {
		t.Fatalf("unexpected highlights: %+v", snake.MemoryHighlights)
	}
}

func TestTurnResponseLocaleSynonym(t *testing.T) {
	resp := TurnResponse(Payload(`{"locale": "en-US"}`))
	if resp.ResolvedLocale != "en-US" {
		t.Fatalf("expected locale synonym to resolve, got %q", resp.ResolvedLocale)
	}
}

func TestTurnResponseEmptyObjectDefaults(t *testing.T) {
	resp := TurnResponse(Payload(`{}`))
	if resp.SessionID != "" || resp.ResolvedLocale != "" {
		t.Fatalf("expected empty strings, got %+v", resp)
	}
	if len(resp.RecommendedTherapistIDs) != 0 || len(resp.Recommendations) != 0 || len(resp.MemoryHighlights) != 0 {
		t.Fatalf("expected empty collections, got %+v", resp)
	}
	// Reply defaults: assistant role, fresh timestamp.
	if resp.Reply.Role != "assistant" {
		t.Fatalf("expected assistant role default, got %q", resp.Reply.Role)
	}
	if _, err := time.Parse(time.RFC3339, resp.Reply.CreatedAt); err != nil {
		t.Fatalf("expected valid RFC3339 default timestamp, got %q: %v", resp.Reply.CreatedAt, err)
	}
}

func TestTurnResponseOpaqueStringDefaults(t *testing.T) {
	// A string has no fields; everything falls back to defaults.
	resp := TurnResponse("plain text body")
	if resp.SessionID != "" || resp.Reply.Content != "" {
		t.Fatalf("expected defaults, got %+v", resp)
	}
}

func TestRecommendationDefaultsWrongShapes(t *testing.T) {
	rec := Recommendation(Payload(`{
		"therapist_id": "t9",
		"specialties": "not-a-list",
		"price_per_session": "not-a-number",
		"is_recommended": "yes",
		"languages": ["zh", 42, "en"]
	}`))
	if rec.TherapistID != "t9" {
		t.Fatalf("unexpected id: %q", rec.TherapistID)
	}
	if len(rec.Specialties) != 0 {
		t.Fatalf("expected empty specialties, got %v", rec.Specialties)
	}
	if rec.PricePerSession != 0 || rec.IsRecommended {
		t.Fatalf("expected zero defaults, got %+v", rec)
	}
	// Non-string elements are dropped, not coerced.
	if !reflect.DeepEqual(rec.Languages, []string{"zh", "en"}) {
		t.Fatalf("unexpected languages: %v", rec.Languages)
	}
}

func TestMsgInvalidRoleDefaultsToAssistant(t *testing.T) {
	msg := Msg(Payload(`{"role": "robot", "content": "hi"}`))
	if msg.Role != "assistant" {
		t.Fatalf("expected assistant, got %q", msg.Role)
	}
	user := Msg(Payload(`{"role": "user", "content": "hi"}`))
	if user.Role != "user" {
		t.Fatalf("expected user role preserved, got %q", user.Role)
	}
}

func TestSessionInfoVariants(t *testing.T) {
	info := SessionInfo(Payload(`{
		"sessionId": "s7",
		"recommendations": [{"therapistId": "t1", "name": "李医生", "score": 0.9}],
		"resolvedLocale": "zh-CN"
	}`))
	if info.SessionID != "s7" || info.ResolvedLocale != "zh-CN" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(info.Recommendations) != 1 || info.Recommendations[0].Name != "李医生" {
		t.Fatalf("unexpected recommendations: %+v", info.Recommendations)
	}
	if info.Recommendations[0].Score != 0.9 {
		t.Fatalf("unexpected score: %v", info.Recommendations[0].Score)
	}
}

func TestDelta(t *testing.T) {
	if d := Delta(Payload(`{"delta": "Hi"}`)); d != "Hi" {
		t.Fatalf("unexpected delta: %q", d)
	}
	if d := Delta(Payload(`{}`)); d != "" {
		t.Fatalf("expected empty delta, got %q", d)
	}
	if d := Delta(Payload(`broken`)); d != "" {
		t.Fatalf("expected empty delta for opaque payload, got %q", d)
	}
}

func TestDetail(t *testing.T) {
	if d := Detail(Payload(`{"detail": "model overloaded"}`)); d != "model overloaded" {
		t.Fatalf("unexpected detail: %q", d)
	}
	if d := Detail(Payload(`upstream timeout`)); d != "upstream timeout" {
		t.Fatalf("expected opaque string as detail, got %q", d)
	}
	if d := Detail(Payload(`{}`)); d != ErrorDetailFallback {
		t.Fatalf("expected fallback detail, got %q", d)
	}
}
