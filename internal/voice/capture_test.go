package voice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriber struct {
	text string
	err  error
	wait chan struct{}
}

func (s *stubTranscriber) Transcribe(ctx context.Context) (string, error) {
	if s.wait != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-s.wait:
		}
	}
	return s.text, s.err
}

func waitForEvent(t *testing.T, s *Session) Event {
	t.Helper()
	select {
	case event := <-s.Events():
		return event
	case <-time.After(time.Second):
		t.Fatal("no capture event delivered")
		return Event{}
	}
}

func TestSession_DeliversTranscript(t *testing.T) {
	s := Start(context.Background(), &stubTranscriber{text: "  coffee for 50 rupees \n"})

	event := waitForEvent(t, s)
	assert.Equal(t, "coffee for 50 rupees", event.Text)
	assert.NoError(t, event.Err)
	assert.False(t, event.Cancelled)
}

func TestSession_StopCancels(t *testing.T) {
	blocked := &stubTranscriber{wait: make(chan struct{})}
	s := Start(context.Background(), blocked)
	s.Stop()
	s.Stop() // idempotent

	event := waitForEvent(t, s)
	assert.True(t, event.Cancelled)
	assert.Empty(t, event.Text)
}

func TestSession_ParentContextCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := Start(ctx, &stubTranscriber{wait: make(chan struct{})})
	cancel()

	event := waitForEvent(t, s)
	assert.True(t, event.Cancelled)
}

func TestSession_EmptyInputIsNoSpeech(t *testing.T) {
	s := Start(context.Background(), &stubTranscriber{text: "   "})

	event := waitForEvent(t, s)
	require.Error(t, event.Err)
	assert.ErrorIs(t, event.Err, ErrNoSpeech)
	assert.False(t, event.Cancelled)
}

func TestSession_PropagatesError(t *testing.T) {
	failure := errors.New("microphone unavailable")
	s := Start(context.Background(), &stubTranscriber{err: failure})

	event := waitForEvent(t, s)
	assert.ErrorIs(t, event.Err, failure)
	assert.False(t, event.Cancelled)
}

func TestReaderTranscriber_ReadsOneLine(t *testing.T) {
	transcriber := NewReaderTranscriber(strings.NewReader("bought lunch for 120\nextra line\n"))

	text, err := transcriber.Transcribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bought lunch for 120", text)
}

func TestReaderTranscriber_EOFYieldsEmpty(t *testing.T) {
	transcriber := NewReaderTranscriber(strings.NewReader(""))

	text, err := transcriber.Transcribe(context.Background())
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestReaderTranscriber_CancelWhileBlocked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transcriber := NewReaderTranscriber(blockingReader{})

	done := make(chan error, 1)
	go func() {
		_, err := transcriber.Transcribe(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("transcribe did not return after cancellation")
	}
}

// blockingReader never produces data and never returns.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
