// Package driver runs the scripted Oaisys demo sequence: start a batch, wait
// for it, request samples and wait for each render, then end the simulation.
package driver

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
	"github.com/rs/zerolog"

	"oaisys_client/internal/oaisys"
	"oaisys_client/internal/shared/types"
)

// Simulator is the set of remote operations the driver needs.
type Simulator interface {
	StepBatch(ctx context.Context) bool
	StepSample(ctx context.Context, pose oaisys.Pose) (batchID, sampleID int64, ok bool)
	RenderFinished(ctx context.Context) ([]string, bool)
	BatchCreationFinished(ctx context.Context) (oaisys.Status, bool)
	EndSimulation(ctx context.Context) (ended, ok bool)
}

var _ Simulator = (*oaisys.Client)(nil)

// unlimitedAttempts tells retry.Call to poll until the check passes.
const unlimitedAttempts = -1

var errNotReady = stderrors.New("not ready")

// Config holds the script parameters.
type Config struct {
	Batches         int
	SamplesPerBatch int
	Pose            oaisys.Pose
	WarmUp          time.Duration
	PollInterval    time.Duration
	// MaxPollAttempts bounds each poll loop; 0 polls forever.
	MaxPollAttempts int
	// PollTimeout bounds the duration of each poll loop; 0 means no bound.
	PollTimeout time.Duration
}

// ConfigFrom builds the script parameters from the [driver] section.
func ConfigFrom(c types.DriverConf) Config {
	return Config{
		Batches:         c.Batches,
		SamplesPerBatch: c.SamplesPerBatch,
		Pose: oaisys.Pose{
			X: c.PoseX, Y: c.PoseY, Z: c.PoseZ,
			QW: c.PoseQW, QX: c.PoseQX, QY: c.PoseQY, QZ: c.PoseQZ,
		},
		WarmUp:          c.WarmUp,
		PollInterval:    c.PollInterval,
		MaxPollAttempts: c.MaxPollAttempts,
		PollTimeout:     c.PollTimeout,
	}
}

// Report records what happened during one run.
type Report struct {
	Batches []BatchReport
	// EndAcknowledged is true when the EndSimulation call went through;
	// SimulationEnded is the server's answer and is only meaningful then.
	EndAcknowledged bool
	SimulationEnded bool
}

type BatchReport struct {
	Started bool
	Created bool
	Samples []SampleReport
}

// SampleReport holds one sample request. BatchID and SampleID are only valid
// when Requested is true.
type SampleReport struct {
	Requested bool
	BatchID   int64
	SampleID  int64
	Rendered  bool
	Files     []string
}

// Driver executes the script against a Simulator.
type Driver struct {
	sim   Simulator
	cfg   Config
	clock clock.Clock
	log   zerolog.Logger
}

// New returns a driver. A non-positive poll interval falls back to one second.
func New(sim Simulator, cfg Config, clk clock.Clock, log zerolog.Logger) *Driver {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &Driver{
		sim:   sim,
		cfg:   cfg,
		clock: clk,
		log:   log,
	}
}

// Run executes the script once. Failed steps are logged and the script moves
// on; only cancellation of ctx stops it early, in which case the partial
// report is returned together with ctx.Err().
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	for b := 0; b < d.cfg.Batches; b++ {
		batch, err := d.runBatch(ctx)
		report.Batches = append(report.Batches, batch)
		if err != nil {
			return report, err
		}
	}

	ended, ok := d.sim.EndSimulation(ctx)
	report.EndAcknowledged = ok
	if !ok {
		d.log.Error().Msg("EndSimulation service failed")
	} else {
		report.SimulationEnded = ended
		d.log.Info().Bool("ended", ended).Msg("EndSimulation service result")
	}
	return report, nil
}

func (d *Driver) runBatch(ctx context.Context) (BatchReport, error) {
	var batch BatchReport

	batch.Started = d.sim.StepBatch(ctx)
	if !batch.Started {
		d.log.Error().Msg("StepBatch service failed")
	}

	if err := d.sleep(ctx, d.cfg.WarmUp); err != nil {
		return batch, err
	}

	var finished oaisys.Status
	err := d.poll(ctx, "batch creation", func() bool {
		code, ok := d.sim.BatchCreationFinished(ctx)
		if ok {
			finished = code
		}
		return ok
	})
	if ctx.Err() != nil {
		return batch, ctx.Err()
	}
	if err != nil {
		d.log.Error().Err(err).Msg("Gave up waiting for batch creation")
	} else {
		batch.Created = true
		d.log.Info().Int32("state", int32(finished)).Msg("BatchCreationFinished service result")
	}

	for s := 0; s < d.cfg.SamplesPerBatch; s++ {
		sample, err := d.requestSample(ctx)
		batch.Samples = append(batch.Samples, sample)
		if err != nil {
			return batch, err
		}
	}
	return batch, nil
}

func (d *Driver) requestSample(ctx context.Context) (SampleReport, error) {
	var sample SampleReport

	batchID, sampleID, ok := d.sim.StepSample(ctx, d.cfg.Pose)
	if ok {
		sample.Requested = true
		sample.BatchID = batchID
		sample.SampleID = sampleID
		d.log.Info().Int64("batch_id", batchID).Int64("sample_id", sampleID).Msg("StepSample service result")
	} else {
		d.log.Error().Msg("StepSample service failed")
	}

	err := d.poll(ctx, "render", func() bool {
		files, ok := d.sim.RenderFinished(ctx)
		if ok {
			sample.Files = files
		}
		return ok
	})
	if ctx.Err() != nil {
		return sample, ctx.Err()
	}
	if err != nil {
		d.log.Error().Err(err).Msg("Gave up waiting for render")
		return sample, nil
	}
	sample.Rendered = true
	d.log.Info().Int("files", len(sample.Files)).Msg("RenderFinished service result")
	return sample, nil
}

// poll calls check every PollInterval until it reports true, the configured
// bounds are hit, or ctx is cancelled.
func (d *Driver) poll(ctx context.Context, what string, check func() bool) error {
	attempts := d.cfg.MaxPollAttempts
	if attempts <= 0 {
		attempts = unlimitedAttempts
	}
	return retry.Call(retry.CallArgs{
		Func: func() error {
			if check() {
				return nil
			}
			return errNotReady
		},
		NotifyFunc: func(_ error, attempt int) {
			d.log.Debug().Str("poll", what).Int("attempt", attempt).Msgf("Waiting for %s", what)
		},
		Attempts:    attempts,
		Delay:       d.cfg.PollInterval,
		MaxDuration: d.cfg.PollTimeout,
		Clock:       d.clock,
		Stop:        ctx.Done(),
	})
}

func (d *Driver) sleep(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.clock.After(dur):
		return nil
	}
}
