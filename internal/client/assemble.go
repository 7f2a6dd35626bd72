package client

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nuanxinlab/heartchat-go/internal/model/chat"
)

var (
	// ErrTurnFailed wraps the detail of a protocol-level error event.
	ErrTurnFailed = errors.New("chat turn failed")

	// ErrStreamEnded reports a stream that closed without a terminal event.
	ErrStreamEnded = errors.New("stream ended without a terminal event")
)

// Assemble drains a turn's event stream into its terminal response. Token
// deltas are concatenated and used as the reply content when the terminal
// event carries none; the session event backfills the session id and locale
// the same way. The stream is always released, whichever way the turn ends.
func Assemble(s *Stream) (*chat.TurnResponse, error) {
	defer s.Close()

	var (
		reply     strings.Builder
		sessionID string
		locale    string
	)

	for {
		event, err := s.Next()
		if err == io.EOF {
			return nil, ErrStreamEnded
		}
		if err != nil {
			return nil, err
		}

		switch event.Type {
		case chat.EventSession:
			sessionID = event.Session.SessionID
			locale = event.Session.ResolvedLocale

		case chat.EventToken:
			reply.WriteString(event.Delta)

		case chat.EventComplete:
			turn := *event.Turn
			if turn.Reply.Content == "" {
				turn.Reply.Content = reply.String()
			}
			if turn.SessionID == "" {
				turn.SessionID = sessionID
			}
			if turn.ResolvedLocale == "" {
				turn.ResolvedLocale = locale
			}
			return &turn, nil

		case chat.EventError:
			return nil, fmt.Errorf("%w: %s", ErrTurnFailed, event.Detail)
		}
	}
}
