package instagram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// API is the set of calls an investigation needs. *Client implements it.
type API interface {
	ResolveUserID(ctx context.Context, username, sessionID string) (string, error)
	FetchProfile(ctx context.Context, userID, sessionID string) (Profile, error)
	AdvancedLookup(ctx context.Context, username string) (Profile, error)
}

var _ API = (*Client)(nil)

// Phase is the state of a step in a progress Event.
type Phase string

const (
	PhaseStarted   Phase = "started"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// Event is a progress notification emitted while an investigation runs.
// Events are observational only.
type Event struct {
	RunID  string
	Step   Step
	Phase  Phase
	Detail string
}

// Investigator runs the resolve → fetch → lookup pipeline. One Investigator can
// run any number of investigations sequentially; it holds no per-run state.
type Investigator struct {
	api   API
	cfg   Config
	sleep func(ctx context.Context, d time.Duration) error
}

// NewInvestigator creates an investigator over the given API.
func NewInvestigator(api API, cfg Config) *Investigator {
	cfg.defaults()
	return &Investigator{api: api, cfg: cfg, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Investigate validates username and assembles its merged profile record.
//
// Resolve and fetch failures are fatal and returned as *Failure. An advanced
// lookup failure is not: the base record is returned and the result is
// marked Partial. There are no retries; a caller may simply run it again.
func (inv *Investigator) Investigate(ctx context.Context, username, sessionID string) (*Investigation, error) {
	runID := uuid.NewString()
	log := slog.With(slog.String("run", runID))

	uname, err := NormalizeUsername(username)
	if err != nil {
		log.Warn("invalid username", slog.String("input", username))
		return nil, err
	}

	res := &Investigation{
		RunID:     runID,
		Username:  uname,
		StartedAt: time.Now(),
	}
	log.Info("investigation started", slog.String("username", uname))

	// 1. resolve
	inv.emit(runID, StepResolve, PhaseStarted, uname)
	start := time.Now()
	userID, err := inv.api.ResolveUserID(ctx, uname, sessionID)
	res.record(StepResolve, start, err)
	if err != nil {
		inv.emit(runID, StepResolve, PhaseFailed, err.Error())
		log.Warn("resolve failed", slog.Any("error", err))
		return nil, err
	}
	res.UserID = userID
	inv.emit(runID, StepResolve, PhaseSucceeded, userID)

	if err := inv.sleep(ctx, inv.cfg.Pacing); err != nil {
		return nil, fmt.Errorf("investigation cancelled: %w", err)
	}

	// 2. fetch
	inv.emit(runID, StepFetch, PhaseStarted, userID)
	start = time.Now()
	base, err := inv.api.FetchProfile(ctx, userID, sessionID)
	res.record(StepFetch, start, err)
	if err != nil {
		inv.emit(runID, StepFetch, PhaseFailed, err.Error())
		log.Warn("fetch failed", slog.String("user_id", userID), slog.Any("error", err))
		return nil, err
	}
	inv.emit(runID, StepFetch, PhaseSucceeded, "")

	if err := inv.sleep(ctx, inv.cfg.Pacing); err != nil {
		return nil, fmt.Errorf("investigation cancelled: %w", err)
	}

	// 3. lookup, best-effort
	inv.emit(runID, StepLookup, PhaseStarted, uname)
	start = time.Now()
	extra, err := inv.api.AdvancedLookup(ctx, uname)
	res.record(StepLookup, start, err)
	if err != nil {
		res.Partial = true
		res.LookupErr = err
		res.Profile = base
		inv.emit(runID, StepLookup, PhaseFailed, err.Error())
		log.Warn("advanced lookup failed, continuing with base record", slog.Any("error", err))
	} else {
		res.Profile = Merge(base, extra)
		inv.emit(runID, StepLookup, PhaseSucceeded, "")
	}

	res.FinishedAt = time.Now()
	log.Info("investigation finished",
		slog.String("user_id", userID),
		slog.Bool("partial", res.Partial),
		slog.Int("fields", len(res.Profile)),
		slog.Duration("took", res.FinishedAt.Sub(res.StartedAt)))
	return res, nil
}

func (inv *Investigator) emit(runID string, step Step, phase Phase, detail string) {
	if inv.cfg.ProgressHook != nil {
		inv.cfg.ProgressHook(Event{RunID: runID, Step: step, Phase: phase, Detail: detail})
	}
}

func (r *Investigation) record(step Step, start time.Time, err error) {
	r.Steps = append(r.Steps, StepOutcome{Step: step, OK: err == nil, Err: err, Duration: time.Since(start)})
}

// Merge returns a new record with every key of extra laid over base. The merge
// is flat: nested values from extra replace base values wholesale.
func Merge(base, extra Profile) Profile {
	out := make(Profile, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
