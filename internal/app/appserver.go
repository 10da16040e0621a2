package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"google.golang.org/grpc"

	"oaisys_client/internal/driver"
	"oaisys_client/internal/oaisys"
	"oaisys_client/internal/shared/logger"
	"oaisys_client/internal/shared/types"
)

// AppServer owns the Oaisys connection for the lifetime of the process: it is
// opened in Run, used by the demo driver, and released on shutdown.
type AppServer struct {
	cfg      *types.Config
	dialOpts []grpc.DialOption
	clock    clock.Clock
	runID    string

	mu     sync.Mutex
	client *oaisys.Client

	stopOnce sync.Once
}

// New creates an AppServer. dialOpts are passed through to the gRPC dialer.
func New(cfg *types.Config, dialOpts ...grpc.DialOption) *AppServer {
	return &AppServer{
		cfg:      cfg,
		dialOpts: dialOpts,
		clock:    clock.WallClock,
		runID:    uuid.NewString(),
	}
}

// RunID identifies this process's session with the server.
func (s *AppServer) RunID() string {
	return s.runID
}

// Run connects, executes the demo sequence and then stays up until ctx is
// done, unless exit_when_done is set. The connection is closed on return.
func (s *AppServer) Run(ctx context.Context) (*driver.Report, error) {
	log := logger.WithComponent("app").With().Str("run_id", s.runID).Logger()
	log.Info().Str("address", s.cfg.ServerConf.Address).Msg("Starting oaisys client")

	client, err := oaisys.Dial(s.cfg.ServerConf, s.runID, s.dialOpts...)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
	defer s.Stop()

	d := driver.New(client, driver.ConfigFrom(s.cfg.DriverConf), s.clock, logger.WithComponent("driver").With().Str("run_id", s.runID).Logger())
	report, err := d.Run(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Demo sequence interrupted")
		return report, nil
	}

	rendered := 0
	for _, b := range report.Batches {
		for _, sample := range b.Samples {
			if sample.Rendered {
				rendered++
			}
		}
	}
	log.Info().
		Int("batches", len(report.Batches)).
		Int("rendered_samples", rendered).
		Bool("simulation_ended", report.SimulationEnded).
		Msg("Demo sequence complete")

	if s.cfg.DriverConf.ExitWhenDone {
		return report, nil
	}
	log.Info().Msg("Idling until shutdown")
	<-ctx.Done()
	return report, nil
}

// Stop releases the connection. It is safe to call more than once.
func (s *AppServer) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.client != nil {
			if err := s.client.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close Oaisys connection")
			}
		}
	})
}
