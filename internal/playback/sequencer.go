// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/cinetrend/internal/core/movie"
	"github.com/taibuivan/cinetrend/internal/platform/ctxutil"
	"github.com/taibuivan/cinetrend/pkg/slice"
	"github.com/taibuivan/cinetrend/pkg/uuid"
)

// silence is the volume at or below which a fading handle counts as stopped.
const silence = 1e-9

// handle is the sequencer-owned state of one stream.
type handle struct {
	id     string
	role   Role
	uri    string
	state  State
	player Player

	initial   float64
	volume    float64
	decrement float64

	duration      time.Duration
	durationKnown bool
	err           string
}

func (h *handle) status() HandleStatus {
	status := HandleStatus{
		ID:     h.id,
		Role:   h.role,
		URI:    h.uri,
		State:  h.state,
		Volume: h.volume,
		Error:  h.err,
	}
	if h.durationKnown {
		ms := h.duration.Milliseconds()
		status.DurationMS = &ms
	}
	return status
}

// fadeJob ramps its governed handles to silence.
type fadeJob struct {
	phase        FadePhase
	preset       Preset
	delay        time.Duration
	steps        int
	ticks        int
	synchronized bool

	start  Timer
	ticker Timer
}

func (job *fadeJob) stopTimers() {
	if job.start != nil {
		job.start.Stop()
		job.start = nil
	}
	if job.ticker != nil {
		job.ticker.Stop()
		job.ticker = nil
	}
}

func (job *fadeJob) status() *FadeStatus {
	return &FadeStatus{
		Phase:        job.phase,
		DelayMS:      job.delay.Milliseconds(),
		DurationMS:   job.preset.Duration.Milliseconds(),
		IntervalMS:   job.preset.Interval.Milliseconds(),
		Steps:        job.steps,
		Ticks:        job.ticks,
		Synchronized: job.synchronized,
	}
}

// # Sequencer

// Sequencer is the single owner of every audio handle in the process.
type Sequencer struct {
	backend   Backend
	policy    Policy
	scheduler Scheduler
	logger    *slog.Logger

	mu         sync.Mutex
	generation uint64
	selection  *Selection
	handles    []*handle
	job        *fadeJob
	closed     bool
}

// NewSequencer constructs a [Sequencer].
func NewSequencer(backend Backend, policy Policy, scheduler Scheduler, logger *slog.Logger) *Sequencer {
	return &Sequencer{
		backend:   backend,
		policy:    policy,
		scheduler: scheduler,
		logger:    logger,
	}
}

/*
PlayForSelection starts the audio sequence for record.

Description: Stops everything from the previous selection first, then opens
and starts every cue of the policy plan and schedules the fade. Streams that
fail to open or play stay idle and are left out of the fade; the call itself
never fails.

Parameters:
  - context: context.Context (carries the selection source for logging)
  - record: movie.Record

Returns:
  - Report: State right after the new streams started
*/
func (sequencer *Sequencer) PlayForSelection(context context.Context, record movie.Record) Report {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.closed {
		sequencer.logger.Warn("playback_rejected_closed", slog.String("slug", record.Slug))
		return sequencer.reportLocked()
	}

	// 1. Last selection wins
	sequencer.cancelLocked()
	sequencer.generation++
	generation := sequencer.generation

	sequencer.selection = &Selection{
		Slug:        record.Slug,
		Title:       record.Title,
		ReleaseYear: record.ReleaseYear,
		WonAward:    record.WonAward,
		Source:      ctxutil.GetSelectionSource(context),
	}

	// 2. Resolve and start cues
	plan := sequencer.policy.Plan(record)
	for _, cue := range plan.Cues {
		sequencer.handles = append(sequencer.handles, sequencer.start(context, cue))
	}

	// 3. Schedule the fade for whatever actually started
	sequencer.scheduleLocked(generation, plan)

	sequencer.logger.Info("playback_started",
		slog.String("slug", record.Slug),
		slog.String("source", sequencer.selection.Source),
		slog.Int("handles", len(sequencer.handles)),
	)

	return sequencer.reportLocked()
}

// start opens and plays one cue; failures leave the handle idle.
func (sequencer *Sequencer) start(context context.Context, cue Cue) *handle {
	h := &handle{
		id:      uuid.New(),
		role:    cue.Role,
		uri:     cue.URI,
		state:   StateIdle,
		initial: cue.Volume,
		volume:  cue.Volume,
	}

	player, err := sequencer.backend.Open(context, cue.URI)
	if err != nil {
		sequencer.fail(h, "open", err)
		return h
	}

	player.SetVolume(cue.Volume)
	if err := player.Play(); err != nil {
		_ = player.Close()
		sequencer.fail(h, "play", err)
		return h
	}

	h.player = player
	h.state = StatePlaying
	h.duration, h.durationKnown = player.Duration()
	return h
}

func (sequencer *Sequencer) fail(h *handle, step string, err error) {
	h.err = err.Error()
	sequencer.logger.Warn("playback_stream_failed",
		slog.String("step", step),
		slog.String("uri", h.uri),
		slog.String("role", string(h.role)),
		slog.Any("error", err),
	)
}

// scheduleLocked computes decrements and the start delay for the playing handles.
func (sequencer *Sequencer) scheduleLocked(generation uint64, plan Plan) {
	playing := slice.Filter(sequencer.handles, func(h *handle) bool { return h.state == StatePlaying })
	if len(playing) == 0 {
		return
	}

	maxInitial := slice.Reduce(playing, 0.0, func(top float64, h *handle) float64 {
		return max(top, h.initial)
	})
	longest := slice.Reduce(playing, time.Duration(0), func(top time.Duration, h *handle) time.Duration {
		if !h.durationKnown {
			return top
		}
		return max(top, h.duration)
	})

	steps := plan.Preset.Steps()
	for _, h := range playing {
		if plan.Synchronized {
			h.decrement = maxInitial / float64(steps)
		} else {
			h.decrement = h.initial / float64(steps)
		}
	}

	job := &fadeJob{
		phase:        PhaseScheduled,
		preset:       plan.Preset,
		delay:        max(longest-plan.Preset.Duration, 0),
		steps:        steps,
		synchronized: plan.Synchronized,
	}
	job.start = sequencer.scheduler.AfterFunc(job.delay, func() { sequencer.beginFade(generation) })
	sequencer.job = job
}

// beginFade moves playing handles to fading and starts the recurring tick.
func (sequencer *Sequencer) beginFade(generation uint64) {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	job := sequencer.job
	if generation != sequencer.generation || job == nil || job.phase != PhaseScheduled {
		return
	}

	job.start = nil
	job.phase = PhaseFading
	for _, h := range sequencer.handles {
		if h.state == StatePlaying {
			h.state = StateFading
		}
	}

	job.ticker = sequencer.scheduler.Every(job.preset.Interval, func() { sequencer.tick(generation) })
	sequencer.logger.Debug("playback_fade_started", slog.Int("steps", job.steps))
}

// tick applies one volume step; the job ends once no handle is fading.
func (sequencer *Sequencer) tick(generation uint64) {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	job := sequencer.job
	if generation != sequencer.generation || job == nil || job.phase != PhaseFading {
		return
	}

	job.ticks++
	fading := 0
	for _, h := range sequencer.handles {
		if h.state != StateFading {
			continue
		}

		volume := h.initial - float64(job.ticks)*h.decrement
		if volume <= silence {
			h.volume = 0
			h.player.SetVolume(0)
			sequencer.release(h)
			continue
		}

		h.volume = volume
		h.player.SetVolume(volume)
		fading++
	}

	if fading == 0 {
		job.stopTimers()
		job.phase = PhaseCompleted
		sequencer.logger.Debug("playback_fade_completed", slog.Int("ticks", job.ticks))
	}
}

// release stops a handle's stream and drops the player reference.
func (sequencer *Sequencer) release(h *handle) {
	h.player.Pause()
	if err := h.player.Rewind(); err != nil {
		sequencer.logger.Warn("playback_rewind_failed", slog.String("uri", h.uri), slog.Any("error", err))
	}
	if err := h.player.Close(); err != nil {
		sequencer.logger.Warn("playback_close_failed", slog.String("uri", h.uri), slog.Any("error", err))
	}
	h.player = nil
	h.state = StateStopped
}

// cancelLocked disposes of the fade job and force-stops every live handle.
func (sequencer *Sequencer) cancelLocked() {
	if sequencer.job != nil {
		sequencer.job.stopTimers()
		sequencer.job = nil
	}

	for _, h := range sequencer.handles {
		if h.player != nil {
			sequencer.release(h)
		}
	}
	sequencer.handles = nil
}

// Snapshot returns value copies of the current handles and fade job.
func (sequencer *Sequencer) Snapshot() Report {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()
	return sequencer.reportLocked()
}

func (sequencer *Sequencer) reportLocked() Report {
	report := Report{Handles: make([]HandleStatus, 0, len(sequencer.handles))}
	if sequencer.selection != nil {
		selection := *sequencer.selection
		report.Selection = &selection
	}
	for _, h := range sequencer.handles {
		report.Handles = append(report.Handles, h.status())
	}
	if sequencer.job != nil {
		report.Fade = sequencer.job.status()
	}
	return report
}

// Close stops everything and rejects further selections.
func (sequencer *Sequencer) Close() error {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()

	if sequencer.closed {
		return nil
	}
	sequencer.closed = true
	sequencer.generation++
	sequencer.cancelLocked()
	sequencer.logger.Info("playback_closed")
	return nil
}
