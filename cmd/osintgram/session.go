package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	instagram "github.com/anatolykoptev/go-instagram"
	"github.com/anatolykoptev/go-instagram/export"
	"github.com/anatolykoptev/go-instagram/report"
)

type investigator interface {
	Investigate(ctx context.Context, username, sessionID string) (*instagram.Investigation, error)
}

// session drives one CLI invocation and holds the most recent successful
// investigation for the "export last" action.
type session struct {
	lines    <-chan string
	out      io.Writer
	inv      investigator
	renderer *report.Renderer
	now      func() time.Time

	defaultSessionID string
	last             *instagram.Investigation
}

func newSession(in io.Reader, out io.Writer, inv investigator, r *report.Renderer) *session {
	return &session{
		lines:    readLines(in),
		out:      out,
		inv:      inv,
		renderer: r,
		now:      time.Now,
	}
}

var errInputClosed = errors.New("input closed")

// shownError marks an error that has already been printed to the user.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

// readLines feeds lines from in to the returned channel, which is closed when
// in ends. A final line without a newline is still delivered.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				ch <- line
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// prompt prints label and reads one trimmed line. It gives up with ctx.Err()
// when ctx is cancelled while waiting for input.
func (s *session) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, s.renderer.Styles().Good.Render(label))
	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *session) progress(msg string) {
	fmt.Fprintln(s.out, s.renderer.Styles().Info.Render("... "+msg))
}

func (s *session) success(msg string) {
	fmt.Fprintln(s.out, s.renderer.Styles().Good.Render("[ok] "+msg))
}

func (s *session) warn(msg string) {
	fmt.Fprintln(s.out, s.renderer.Styles().Warn.Render("[!] "+msg))
}

func (s *session) fail(msg string) {
	fmt.Fprintln(s.out, s.renderer.Styles().Bad.Render("[x] "+msg))
}

// onProgress turns pipeline events into status lines.
func (s *session) onProgress(e instagram.Event) {
	switch {
	case e.Step == instagram.StepResolve && e.Phase == instagram.PhaseStarted:
		s.progress("Resolving user ID")
	case e.Step == instagram.StepResolve && e.Phase == instagram.PhaseSucceeded:
		s.success("ID found: " + e.Detail)
	case e.Step == instagram.StepFetch && e.Phase == instagram.PhaseStarted:
		s.progress("Collecting profile details")
	case e.Step == instagram.StepFetch && e.Phase == instagram.PhaseSucceeded:
		s.success("Basic information collected")
	case e.Step == instagram.StepLookup && e.Phase == instagram.PhaseStarted:
		s.progress("Running advanced lookup")
	case e.Step == instagram.StepLookup && e.Phase == instagram.PhaseSucceeded:
		s.success("Advanced lookup finished")
	case e.Step == instagram.StepLookup && e.Phase == instagram.PhaseFailed:
		s.warn("Advanced lookup failed, continuing with basic information")
	}
}

// investigate runs one investigation, renders it and remembers it.
func (s *session) investigate(ctx context.Context, username, sessionID string) (*instagram.Investigation, error) {
	fmt.Fprintln(s.out, s.renderer.Styles().Section.Render("\nInvestigating: @"+strings.TrimPrefix(username, "@")))
	res, err := s.inv.Investigate(ctx, username, sessionID)
	if err != nil {
		s.fail("Investigation failed: " + err.Error())
		return nil, shownError{err}
	}
	s.last = res
	if err := s.renderer.Render(s.out, res.Profile, s.now()); err != nil {
		return res, fmt.Errorf("render: %w", err)
	}
	return res, nil
}

// export writes res to base (or the default name) and reports the outcome.
// A failed export leaves the held result untouched.
func (s *session) export(res *instagram.Investigation, base string, f export.Format) (string, error) {
	path, err := export.ToFile(base, f, res.Profile, s.now())
	if err != nil {
		s.fail("Export failed: " + err.Error())
		return "", shownError{err}
	}
	s.success("Data exported to: " + path)
	return path, nil
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true
	}
	return false
}

// runOnce is the flag-driven mode: investigate, render, then export to
// output if given, otherwise ask.
func (s *session) runOnce(ctx context.Context, username, sessionID, output string, f export.Format) error {
	res, err := s.investigate(ctx, username, sessionID)
	if err != nil {
		return err
	}
	if output != "" {
		_, err := s.export(res, output, f)
		return err
	}
	answer, err := s.prompt(ctx, "\nExport the data? (y/N): ")
	if err != nil || !isYes(answer) {
		return nil
	}
	_, err = s.export(res, "", f)
	return err
}

// readTarget asks for a username and session ID until both are usable.
func (s *session) readTarget(ctx context.Context) (string, string, error) {
	var username string
	for {
		raw, err := s.prompt(ctx, "Instagram username: ")
		if err != nil {
			return "", "", err
		}
		u, err := instagram.NormalizeUsername(raw)
		if err != nil {
			if raw == "" {
				s.fail("Username is required")
			} else {
				s.fail("Invalid username: use only letters, digits, dots and underscores")
			}
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(raw), "@") {
			s.warn("@ removed")
		}
		username = u
		break
	}

	label := "Instagram session ID: "
	if s.defaultSessionID != "" {
		label = "Instagram session ID [" + sessionEnv + "]: "
	}
	for {
		id, err := s.prompt(ctx, label)
		if err != nil {
			return "", "", err
		}
		if id == "" {
			id = s.defaultSessionID
		}
		if id != "" {
			return username, id, nil
		}
		s.fail("Session ID is required")
	}
}

func (s *session) readFormat(ctx context.Context) (export.Format, bool) {
	answer, err := s.prompt(ctx, "Format (json/csv): ")
	if err != nil {
		return "", false
	}
	f, err := export.ParseFormat(answer)
	if err != nil {
		s.fail("Invalid format, use 'json' or 'csv'")
		return "", false
	}
	return f, true
}

// interactive runs the menu loop until the user quits or input ends.
func (s *session) interactive(ctx context.Context) error {
	fmt.Fprint(s.out, s.renderer.Styles().Header.Render(banner))
	for {
		fmt.Fprintln(s.out, s.renderer.Styles().Section.Render("\nMAIN MENU:"))
		fmt.Fprintln(s.out, "1. New investigation")
		fmt.Fprintln(s.out, "2. Tutorial (how to get a session ID)")
		fmt.Fprintln(s.out, "3. Export last investigation")
		fmt.Fprintln(s.out, "4. Quit")

		if ctx.Err() != nil {
			return s.interrupted(ctx)
		}
		choice, err := s.prompt(ctx, "\nChoose an option (1-4): ")
		if err != nil {
			return s.interrupted(ctx)
		}
		switch choice {
		case "1":
			username, sessionID, err := s.readTarget(ctx)
			if err != nil {
				return s.interrupted(ctx)
			}
			res, err := s.investigate(ctx, username, sessionID)
			if err != nil {
				continue
			}
			answer, err := s.prompt(ctx, "\nExport the data? (y/N): ")
			if err != nil {
				return s.interrupted(ctx)
			}
			if isYes(answer) {
				if f, ok := s.readFormat(ctx); ok {
					_, _ = s.export(res, "", f)
				}
			}
		case "2":
			fmt.Fprint(s.out, s.renderer.Styles().Info.Render(tutorial))
		case "3":
			if s.last == nil {
				s.warn("No investigation has been run yet")
				continue
			}
			if f, ok := s.readFormat(ctx); ok {
				_, _ = s.export(s.last, "", f)
			}
		case "4":
			fmt.Fprintln(s.out, s.renderer.Styles().Good.Render("\nBye!"))
			return nil
		default:
			s.fail("Invalid option, choose 1-4")
		}
	}
}

// interrupted ends the menu loop. Running out of input is a normal exit; a
// cancelled context is reported as interrupted.
func (s *session) interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		s.warn("Interrupted")
		return shownError{err}
	}
	return nil
}
