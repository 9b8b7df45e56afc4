package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// point the root logger at a buffer so the context helpers can be observed
func captureRoot(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	root.Store(&l)
	inited.Store(true)
	return &buf
}

func TestCCarriesRequestID(t *testing.T) {
	buf := captureRoot(t)

	ctx := WithRequest(context.Background(), "req-123")
	C(ctx).Info().Msg("hello")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Fatalf("log line missing request_id: %s", buf.String())
	}
}

func TestCWithoutRequestID(t *testing.T) {
	buf := captureRoot(t)

	C(context.Background()).Info().Msg("plain")

	if strings.Contains(buf.String(), "request_id") {
		t.Fatalf("unexpected request_id: %s", buf.String())
	}
}

func TestWithRequestIgnoresEmptyID(t *testing.T) {
	ctx := context.Background()
	if got := WithRequest(ctx, ""); got != ctx {
		t.Fatalf("empty request id should leave the context alone")
	}
}
