package client

import (
	"context"
	"io"

	"github.com/nuanxinlab/heartchat-go/internal/model/chat"
	"github.com/nuanxinlab/heartchat-go/internal/normalize"
	"github.com/nuanxinlab/heartchat-go/internal/sse"
)

// Wire event names the backend emits. Anything else is skipped, which keeps
// the protocol forward-compatible with event kinds this client predates.
const (
	wireEventSession  = "session_established"
	wireEventToken    = "token"
	wireEventComplete = "complete"
	wireEventError    = "error"
)

const readChunkSize = 4096

// Stream is the lazy event sequence of one chat turn. Events are produced
// only as the caller asks for them; the only blocking point is the read of
// the next chunk from the response body. Stream is not safe for concurrent
// use — one turn has one consumer.
type Stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	body   io.ReadCloser

	buf     sse.Buffer
	readBuf []byte
	pending []sse.Record

	// doc holds the single synthetic complete event of document mode.
	doc *chat.StreamEvent

	sessionSeen bool
	tokenSeen   bool
	terminated  bool
	eof         bool
	readErr     error
	released    bool
}

func newStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser) *Stream {
	return &Stream{
		ctx:     ctx,
		cancel:  cancel,
		body:    body,
		readBuf: make([]byte, readChunkSize),
	}
}

func newDocumentStream(turn chat.TurnResponse) *Stream {
	return &Stream{
		doc:      &chat.StreamEvent{Type: chat.EventComplete, Turn: &turn},
		released: true,
	}
}

// Next returns the next event of the turn, or io.EOF once the sequence is
// exhausted. After the terminal event (complete or error) the sequence ends;
// any further wire records are not forwarded. A cancelled context surfaces
// as its own error, never as a transport or parse failure.
func (s *Stream) Next() (chat.StreamEvent, error) {
	if s.terminated {
		return chat.StreamEvent{}, io.EOF
	}

	if s.doc != nil {
		event := *s.doc
		s.doc = nil
		s.finish()
		return event, nil
	}

	for {
		if err := s.ctxErr(); err != nil {
			s.finish()
			return chat.StreamEvent{}, err
		}

		// Drain records already buffered before touching the wire again.
		for len(s.pending) > 0 {
			rec := s.pending[0]
			s.pending = s.pending[1:]

			event, ok := s.dispatch(rec)
			if !ok {
				continue
			}
			if event.Type.Terminal() {
				s.finish()
			}
			return event, nil
		}

		if s.eof {
			s.finish()
			if err := s.ctxErr(); err != nil {
				return chat.StreamEvent{}, err
			}
			if s.readErr != nil && s.readErr != io.EOF {
				return chat.StreamEvent{}, s.readErr
			}
			// An unterminated tail at end of stream is discarded, not
			// flushed: the backend always closes records with a separator,
			// so a missing one means the connection died mid-record.
			return chat.StreamEvent{}, io.EOF
		}

		n, err := s.body.Read(s.readBuf)
		if n > 0 {
			for _, raw := range s.buf.Feed(s.readBuf[:n]) {
				s.pending = append(s.pending, sse.ParseRecord(raw))
			}
		}
		if err != nil {
			s.eof = true
			s.readErr = err
		}
	}
}

// Close releases the stream early: the cancellation signal fires, the
// underlying read aborts, and the response body is closed. Safe to call more
// than once and after io.EOF.
func (s *Stream) Close() error {
	s.terminated = true
	s.release()
	return nil
}

// dispatch classifies one wire record into zero or one stream event.
func (s *Stream) dispatch(rec sse.Record) (chat.StreamEvent, bool) {
	switch rec.Event {
	case wireEventSession:
		// At most one session event per turn, and only before tokens.
		if s.sessionSeen || s.tokenSeen {
			return chat.StreamEvent{}, false
		}
		s.sessionSeen = true
		info := normalize.SessionInfo(normalize.Payload(rec.Data))
		return chat.StreamEvent{Type: chat.EventSession, Session: &info}, true

	case wireEventToken:
		s.tokenSeen = true
		delta := normalize.Delta(normalize.Payload(rec.Data))
		return chat.StreamEvent{Type: chat.EventToken, Delta: delta}, true

	case wireEventComplete:
		turn := normalize.TurnResponse(normalize.Payload(rec.Data))
		return chat.StreamEvent{Type: chat.EventComplete, Turn: &turn}, true

	case wireEventError:
		detail := normalize.Detail(normalize.Payload(rec.Data))
		return chat.StreamEvent{Type: chat.EventError, Detail: detail}, true
	}

	return chat.StreamEvent{}, false
}

// ctxErr reports the cancellation state for streams bound to a request
// context. Document-mode streams have none.
func (s *Stream) ctxErr() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}

func (s *Stream) finish() {
	s.terminated = true
	s.release()
}

// release runs on every exit path: normal completion, error, and
// cancellation. A failing body close is logged by closeBody, never surfaced.
func (s *Stream) release() {
	if s.released {
		return
	}
	s.released = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.body != nil {
		closeBody(s.body)
	}
}
