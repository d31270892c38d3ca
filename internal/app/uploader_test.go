package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/vu2ptt/upload-to-rbn/internal/ports"
	"github.com/vu2ptt/upload-to-rbn/pkg/wsjtx"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// warnCounter counts warning-level messages.
type warnCounter struct {
	mockLogger
	warns int
}

func (w *warnCounter) Warn(msg string, fields ...ports.Field) { w.warns++ }

// mockSource serves a fixed slice of lines.
type mockSource struct {
	lines []string
	pos   int
}

func (m *mockSource) Open(ctx context.Context) error { return nil }

func (m *mockSource) Next(ctx context.Context) (string, error) {
	if m.pos >= len(m.lines) {
		return "", io.EOF
	}
	line := m.lines[m.pos]
	m.pos++
	return line, nil
}

func (m *mockSource) Close() error { return nil }

// mockSender records sent payloads.
type mockSender struct {
	payloads [][]byte
	failAt   int // 1-based send index to fail on, 0 = never
	err      error
}

func (m *mockSender) Send(payload []byte) error {
	if m.failAt > 0 && len(m.payloads)+1 == m.failAt {
		return m.err
	}
	m.payloads = append(m.payloads, append([]byte(nil), payload...))
	return nil
}

func (m *mockSender) Close() error { return nil }

func msgType(payload []byte) uint32 {
	if len(payload) < 12 {
		return 0
	}
	return uint32(payload[8])<<24 | uint32(payload[9])<<16 | uint32(payload[10])<<8 | uint32(payload[11])
}

func testConfig() Config {
	return Config{
		SoftwareID: "QMTECH FT8 RX 1.0",
		DECall:     "AB1CDE",
		DEGrid:     "AB12",
		DXGrid:     "AB12",
	}
}

func TestUploader_StatusOncePerBandRun(t *testing.T) {
	source := &mockSource{lines: []string{
		"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42",
		"230101 120015 0.8 -5 0.1 14074500 CD2EFG GH77",
		"230101 120030 0.9 3 -0.2 7074210 EF3HIJ IJ55",
		"230101 120045 0.7 0 0.0 7075100 GH4KLM KL33",
		"230101 120100 1.2 -21 0.5 14075800 MN5OPQ MN11",
	}}
	sender := &mockSender{}

	u := NewUploader(testConfig(), source, sender, mockLogger{})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Three band runs (20m, 40m, 20m) and five decodes.
	var types []uint32
	for _, p := range sender.payloads {
		types = append(types, msgType(p))
	}
	want := []uint32{1, 2, 2, 1, 2, 2, 1, 2}
	if len(types) != len(want) {
		t.Fatalf("sent %d datagrams (%v), want %d", len(types), types, len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("datagram #%d type = %d, want %d (sequence %v)", i, types[i], want[i], types)
		}
	}
}

func TestUploader_FirstRecordAnnouncesBand(t *testing.T) {
	source := &mockSource{lines: []string{"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42"}}
	sender := &mockSender{}

	u := NewUploader(testConfig(), source, sender, mockLogger{})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sender.payloads) != 2 {
		t.Fatalf("sent %d datagrams, want 2", len(sender.payloads))
	}
	if msgType(sender.payloads[0]) != wsjtx.TypeStatus {
		t.Errorf("first datagram type = %d, want status", msgType(sender.payloads[0]))
	}
	if msgType(sender.payloads[1]) != wsjtx.TypeDecode {
		t.Errorf("second datagram type = %d, want decode", msgType(sender.payloads[1]))
	}
}

func TestUploader_DecodePayload(t *testing.T) {
	source := &mockSource{lines: []string{"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42"}}
	sender := &mockSender{}

	u := NewUploader(testConfig(), source, sender, mockLogger{})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := wsjtx.Decode{
		ID:      "QMTECH FT8 RX 1.0",
		SNR:     -10,
		DT:      0.3,
		DeltaHz: 123,
		Message: "CQ AB1CDE FN42",
	}.Encode()

	if len(sender.payloads) != 2 {
		t.Fatalf("sent %d datagrams, want 2", len(sender.payloads))
	}
	if !bytes.Equal(sender.payloads[1], want) {
		t.Errorf("decode payload =\n%x, want\n%x", sender.payloads[1], want)
	}
}

func TestUploader_StatusPayload(t *testing.T) {
	source := &mockSource{lines: []string{"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42"}}
	sender := &mockSender{}

	u := NewUploader(testConfig(), source, sender, mockLogger{})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := wsjtx.Status{
		ID:     "QMTECH FT8 RX 1.0",
		DialHz: 14074000,
		DXCall: "AB1CDE",
		Report: "-10",
		DECall: "AB1CDE",
		DEGrid: "AB12",
		DXGrid: "AB12",
	}.Encode()

	if !bytes.Equal(sender.payloads[0], want) {
		t.Errorf("status payload =\n%x, want\n%x", sender.payloads[0], want)
	}
}

func TestUploader_SkipsMalformedLines(t *testing.T) {
	source := &mockSource{lines: []string{
		"230101 120000 1.0 -10 0.3", // missing frequency
		"garbage",
		"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42",
	}}
	sender := &mockSender{}

	u := NewUploader(testConfig(), source, sender, mockLogger{})
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sender.payloads) != 2 {
		t.Errorf("sent %d datagrams, want 2 (status + decode for the valid line)", len(sender.payloads))
	}
	if u.skipped != 2 {
		t.Errorf("skipped = %d, want 2", u.skipped)
	}
	if u.decodes != 1 {
		t.Errorf("decodes = %d, want 1", u.decodes)
	}
}

func TestUploader_SendFailureIsFatal(t *testing.T) {
	source := &mockSource{lines: []string{
		"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42",
		"230101 120015 0.8 -5 0.1 14074500 CD2EFG GH77",
	}}
	wantErr := errors.New("short write")
	sender := &mockSender{failAt: 2, err: wantErr}

	u := NewUploader(testConfig(), source, sender, mockLogger{})
	if err := u.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
	if len(sender.payloads) != 1 {
		t.Errorf("sent %d datagrams before failure, want 1", len(sender.payloads))
	}
}

func TestUploader_OversizeRunWarns(t *testing.T) {
	// Enough decodes on one band to push the byte count past 64 KiB.
	lines := make([]string, 0, 900)
	for i := 0; i < 900; i++ {
		lines = append(lines, "230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42")
	}
	source := &mockSource{lines: lines}
	sender := &mockSender{}
	logger := &warnCounter{}

	u := NewUploader(testConfig(), source, sender, logger)
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if u.totalBytes <= sizeWarnThreshold {
		t.Fatalf("totalBytes = %d, test needs to exceed %d", u.totalBytes, sizeWarnThreshold)
	}
	if logger.warns != 1 {
		t.Errorf("warnings = %d, want 1", logger.warns)
	}
}

func TestUploader_StatusPause(t *testing.T) {
	source := &mockSource{lines: []string{
		"230101 120000 1.0 -10 0.3 14074123 AB1CDE FN42",
		"230101 120015 0.8 -5 0.1 7074500 CD2EFG GH77",
	}}
	sender := &mockSender{}

	cfg := testConfig()
	cfg.StatusPause = 20 * time.Millisecond

	u := NewUploader(cfg, source, sender, mockLogger{})
	start := time.Now()
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Two band changes, so at least two pacing pauses.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("run took %v, want at least 40ms of pacing", elapsed)
	}
}
