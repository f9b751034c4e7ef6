package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	instagram "github.com/anatolykoptev/go-instagram"
	"github.com/anatolykoptev/go-instagram/export"
	"github.com/anatolykoptev/go-instagram/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInvestigator struct {
	calls []string
	res   *instagram.Investigation
	err   error
}

func (s *stubInvestigator) Investigate(_ context.Context, username, sessionID string) (*instagram.Investigation, error) {
	s.calls = append(s.calls, username+"|"+sessionID)
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func okInvestigation() *instagram.Investigation {
	return &instagram.Investigation{
		Username: "john.doe",
		UserID:   "123",
		Profile:  instagram.Profile{"username": "john.doe", "userID": "123", "follower_count": 10},
	}
}

func newTestSession(input string, inv investigator) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	s := newSession(strings.NewReader(input), &out, inv, report.New(report.Plain()))
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, &out
}

func TestRunOnce_ExportsToOutput(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dossier")
	inv := &stubInvestigator{res: okInvestigation()}
	s, out := newTestSession("", inv)

	require.NoError(t, s.runOnce(context.Background(), "@john.doe", "sess", base, export.FormatCSV))
	assert.Equal(t, []string{"@john.doe|sess"}, inv.calls)
	assert.Contains(t, out.String(), "Username: john.doe")
	assert.Contains(t, out.String(), "Data exported to: "+base+".csv")

	_, err := os.Stat(base + ".csv")
	assert.NoError(t, err)
	assert.Same(t, inv.res, s.last)
}

func TestRunOnce_PromptsForExport(t *testing.T) {
	t.Chdir(t.TempDir())
	s, out := newTestSession("y\n", &stubInvestigator{res: okInvestigation()})

	require.NoError(t, s.runOnce(context.Background(), "john.doe", "sess", "", export.FormatJSON))
	assert.Contains(t, out.String(), "instagram_john.doe_20240102_030405.json")
	_, err := os.Stat("instagram_john.doe_20240102_030405.json")
	assert.NoError(t, err)
}

func TestRunOnce_DeclineExport(t *testing.T) {
	t.Chdir(t.TempDir())
	s, out := newTestSession("n\n", &stubInvestigator{res: okInvestigation()})
	require.NoError(t, s.runOnce(context.Background(), "john.doe", "sess", "", export.FormatJSON))
	assert.NotContains(t, out.String(), "exported")
}

func TestRunOnce_Failure(t *testing.T) {
	failure := &instagram.Failure{Kind: instagram.KindNotFound, Step: instagram.StepResolve, Detail: "HTTP 404"}
	s, out := newTestSession("", &stubInvestigator{err: failure})

	err := s.runOnce(context.Background(), "john.doe", "sess", "", export.FormatJSON)
	require.Error(t, err)
	assert.True(t, instagram.IsKind(err, instagram.KindNotFound))
	var shown shownError
	assert.True(t, errors.As(err, &shown))
	assert.Contains(t, out.String(), "Investigation failed: resolve: not found: HTTP 404")
	assert.Nil(t, s.last)
}

func TestInteractive_InvestigateThenExportLast(t *testing.T) {
	t.Chdir(t.TempDir())
	input := strings.Join([]string{
		"3",            // export before any investigation
		"1",            // new investigation
		"bad user!",    // rejected
		"@john.doe",    // accepted
		"",             // empty session id rejected
		"sess",         // session id
		"n",            // don't export now
		"3", "xml",     // invalid format
		"3", "csv",     // export last
		"2",            // tutorial
		"9",            // invalid option
		"4",
	}, "\n") + "\n"
	inv := &stubInvestigator{res: okInvestigation()}
	s, out := newTestSession(input, inv)

	require.NoError(t, s.interactive(context.Background()))
	text := out.String()

	assert.Equal(t, []string{"john.doe|sess"}, inv.calls)
	assert.Contains(t, text, "No investigation has been run yet")
	assert.Contains(t, text, "Invalid username")
	assert.Contains(t, text, "@ removed")
	assert.Contains(t, text, "Session ID is required")
	assert.Contains(t, text, "Invalid format")
	assert.Contains(t, text, "Data exported to: instagram_john.doe_20240102_030405.csv")
	assert.Contains(t, text, "How to get your Instagram session ID")
	assert.Contains(t, text, "Invalid option")
	assert.Contains(t, text, "Bye!")
}

func TestInteractive_DefaultSessionID(t *testing.T) {
	inv := &stubInvestigator{res: okInvestigation()}
	s, _ := newTestSession("1\njohn\n\nn\n4\n", inv)
	s.defaultSessionID = "from-env"

	require.NoError(t, s.interactive(context.Background()))
	assert.Equal(t, []string{"john|from-env"}, inv.calls)
}

func TestInteractive_FailedRunKeepsLastResult(t *testing.T) {
	prev := okInvestigation()
	inv := &stubInvestigator{err: &instagram.Failure{Kind: instagram.KindRateLimited, Step: instagram.StepFetch}}
	s, out := newTestSession("1\njohn\nsess\n4\n", inv)
	s.last = prev

	require.NoError(t, s.interactive(context.Background()))
	assert.Same(t, prev, s.last)
	assert.Contains(t, out.String(), "rate limited")
}

func TestExport_FailureKeepsResult(t *testing.T) {
	s, out := newTestSession("", nil)
	res := okInvestigation()
	s.last = res

	_, err := s.export(res, filepath.Join(t.TempDir(), "no", "such", "dir", "x"), export.FormatJSON)
	require.Error(t, err)
	assert.Same(t, res, s.last)
	assert.Contains(t, out.String(), "Export failed")
}

func TestInteractive_EOF(t *testing.T) {
	s, _ := newTestSession("", &stubInvestigator{})
	assert.NoError(t, s.interactive(context.Background()))
}

func TestInteractive_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	s := newSession(pr, &out, &stubInvestigator{}, report.New(report.Plain()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.interactive(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		var shown shownError
		assert.True(t, errors.As(err, &shown))
	case <-time.After(2 * time.Second):
		t.Fatal("interactive did not return after cancellation")
	}
	assert.Contains(t, out.String(), "Interrupted")
}

func TestInteractive_CancelledBeforeMenu(t *testing.T) {
	inv := &stubInvestigator{res: okInvestigation()}
	s, _ := newTestSession("1\njohn.doe\nsess\n", inv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.interactive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, inv.calls)
}

func TestOnProgress(t *testing.T) {
	s, out := newTestSession("", nil)
	s.onProgress(instagram.Event{Step: instagram.StepResolve, Phase: instagram.PhaseSucceeded, Detail: "123"})
	s.onProgress(instagram.Event{Step: instagram.StepLookup, Phase: instagram.PhaseFailed})
	assert.Contains(t, out.String(), "ID found: 123")
	assert.Contains(t, out.String(), "Advanced lookup failed")
}

func TestRootCmd_Tutorial(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"--tutorial", "--no-color"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sessionid")
}

func TestRootCmd_BadFormat(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{})
	cmd.SetArgs([]string{"-u", "john", "-s", "x", "-f", "xml"})
	assert.ErrorIs(t, cmd.Execute(), export.ErrUnknownFormat)
}
