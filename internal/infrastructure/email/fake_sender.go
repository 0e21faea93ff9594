package email

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// FakeSender is a development/testing sender. It records every message and
// can be told to fail, which lets tests exercise the compensating
// token-clear path without an SMTP server.
type FakeSender struct {
	lg zerolog.Logger

	mu   sync.Mutex
	sent []FakeMessage

	// FailWith, when non-nil, is returned from every send.
	FailWith error
}

type FakeMessage struct {
	Kind string // "verify" or "reset"
	To   string
	URL  string
}

func NewFakeSender(lg zerolog.Logger) *FakeSender {
	return &FakeSender{
		lg: lg.With().Str("component", "fake_sender").Logger(),
	}
}

func (s *FakeSender) SendVerifyEmail(ctx context.Context, toEmail, url string) error {
	return s.record("verify", toEmail, url)
}

func (s *FakeSender) SendPasswordReset(ctx context.Context, toEmail, url string) error {
	return s.record("reset", toEmail, url)
}

// Sent returns a copy of every recorded message.
func (s *FakeSender) Sent() []FakeMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FakeMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *FakeSender) record(kind, to, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	s.lg.Info().Str("kind", kind).Str("to", to).Str("url", url).Msg("FAKE send")
	s.sent = append(s.sent, FakeMessage{Kind: kind, To: to, URL: url})
	return nil
}
