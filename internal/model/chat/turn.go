package chat

// Recommendation describes one matched therapist attached to a turn.
// Every field is defensively defaulted during normalization; none of the
// accessors here can observe a missing field as anything but a zero value.
type Recommendation struct {
	TherapistID     string   `json:"therapistId"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Specialties     []string `json:"specialties"`
	Languages       []string `json:"languages"`
	PricePerSession float64  `json:"pricePerSession"`
	Currency        string   `json:"currency"`
	IsRecommended   bool     `json:"isRecommended"`
	Score           float64  `json:"score"`
	Reason          string   `json:"reason"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// MemoryHighlight is a short server-computed summary fact about the
// conversation so far.
type MemoryHighlight struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// TurnResponse is the terminal aggregate of one chat turn.
type TurnResponse struct {
	SessionID               string            `json:"sessionId"`
	Reply                   Message           `json:"reply"`
	RecommendedTherapistIDs []string          `json:"recommendedTherapistIds"`
	Recommendations         []Recommendation  `json:"recommendations"`
	MemoryHighlights        []MemoryHighlight `json:"memoryHighlights"`
	ResolvedLocale          string            `json:"resolvedLocale"`
}

// SessionInfo is the payload of a session_established event: the assigned
// session identifier plus the side data computed alongside it.
type SessionInfo struct {
	SessionID        string            `json:"sessionId"`
	Recommendations  []Recommendation  `json:"recommendations"`
	MemoryHighlights []MemoryHighlight `json:"memoryHighlights"`
	ResolvedLocale   string            `json:"resolvedLocale"`
}
