// Package voice captures one spoken (or typed) utterance as a single
// completion event. A capture session is a cancellable task: it ends
// with exactly one of a transcript, an error, or a cancellation, never
// a stream of listener callbacks.
package voice

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ErrNoSpeech is returned when a capture session completes without any
// usable input.
var ErrNoSpeech = errors.New("no speech detected")

// Transcriber produces one transcript per call. Implementations block
// until input arrives, the source fails, or ctx is cancelled.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// Event is the single completion of a capture session. Exactly one of
// Text, Err, or Cancelled is meaningful.
type Event struct {
	Text      string
	Err       error
	Cancelled bool
}

// Session runs one capture over a transcriber. Stop is idempotent and
// safe to call from a lifecycle teardown path while the session is
// still listening.
type Session struct {
	transcriber Transcriber
	events      chan Event
	cancel      context.CancelFunc
	once        sync.Once
}

// Start begins capturing and returns immediately. The returned session
// delivers exactly one Event on Events.
func Start(ctx context.Context, t Transcriber) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		transcriber: t,
		events:      make(chan Event, 1),
		cancel:      cancel,
	}

	go func() {
		defer cancel()
		text, err := t.Transcribe(ctx)
		switch {
		case ctx.Err() != nil:
			slog.Debug("voice capture cancelled")
			s.events <- Event{Cancelled: true}
		case err != nil:
			slog.Warn("voice capture failed", "error", err)
			s.events <- Event{Err: err}
		case strings.TrimSpace(text) == "":
			s.events <- Event{Err: ErrNoSpeech}
		default:
			slog.Debug("voice capture completed", "text", text)
			s.events <- Event{Text: strings.TrimSpace(text)}
		}
	}()
	return s
}

// Events delivers the session's single completion event.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Stop cancels an in-flight capture. The session still delivers its
// completion event (as cancelled, unless a result already won the race).
func (s *Session) Stop() {
	s.once.Do(s.cancel)
}

// ReaderTranscriber reads one line of text from an input stream.
// It stands in for a microphone-backed implementation in terminal use.
type ReaderTranscriber struct {
	reader *bufio.Reader
}

// NewReaderTranscriber wraps r for line-at-a-time capture.
func NewReaderTranscriber(r io.Reader) *ReaderTranscriber {
	return &ReaderTranscriber{reader: bufio.NewReader(r)}
}

// Transcribe blocks until one line arrives or ctx is cancelled. Reads
// race against cancellation on a goroutine because plain readers have
// no deadline support.
func (t *ReaderTranscriber) Transcribe(ctx context.Context) (string, error) {
	type lineResult struct {
		text string
		err  error
	}
	result := make(chan lineResult, 1)

	go func() {
		line, err := t.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			result <- lineResult{err: err}
			return
		}
		result <- lineResult{text: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-result:
		return r.text, r.err
	}
}
