// Package oaisystest provides an in-memory Oaisys server for tests.
//
// The server follows the reference simulation server: StepBatch starts a
// batch that reports in progress for a configurable number of polls before
// it is finished, and every StepSample starts a render that behaves the same
// way and then hands out its file list exactly once.
package oaisystest

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"oaisys_client/internal/oaisys/oaisyspb"
)

// Address is the dial target to use together with Server.DialOption.
const Address = "passthrough:///oaisys-bufnet"

const (
	stateIdle       int32 = 0
	stateInProgress int32 = 1
	stateFinished   int32 = 2
)

// Server is a scriptable Oaisys server. Configure the exported fields before
// Start; the counters may be read at any time.
type Server struct {
	oaisyspb.UnimplementedOaisysServer

	// BatchPolls is the number of BatchCreationFinished calls answered with
	// "in progress" before the batch is reported finished.
	BatchPolls int
	// RenderPolls is the same for RenderFinished after each StepSample.
	RenderPolls int
	// RejectBatch makes StepBatch reply successRet=false.
	RejectBatch bool
	// RejectSample makes StepSample reply successRet=false.
	RejectSample bool
	// EndOutcome is the successRet reported by EndSimulation.
	EndOutcome bool
	// FilesPerSample is the number of output files per rendered sample.
	FilesPerSample int

	mu          sync.Mutex
	failures    map[string]error
	calls       map[string]int
	runIDs      map[string]struct{}
	poses       []*oaisyspb.PoseType
	batchID     int64
	sampleID    int64
	batchState  int32
	batchSeen   int
	renderState int32
	renderSeen  int
	files       []string
	ended       bool

	listener *bufconn.Listener
	grpcSrv  *grpc.Server
}

// NewServer returns a server that finishes immediately and renders three
// files per sample.
func NewServer() *Server {
	return &Server{
		EndOutcome:     true,
		FilesPerSample: 3,
		failures:       make(map[string]error),
		calls:          make(map[string]int),
		runIDs:         make(map[string]struct{}),
	}
}

// Start serves on an in-process listener until the test ends and returns the
// dial option that connects to it.
func (s *Server) Start(t testing.TB) grpc.DialOption {
	t.Helper()
	s.listener = bufconn.Listen(1 << 20)
	s.grpcSrv = oaisyspb.NewServer()
	oaisyspb.RegisterOaisysServer(s.grpcSrv, s)
	go func() {
		_ = s.grpcSrv.Serve(s.listener)
	}()
	t.Cleanup(s.Stop)
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return s.listener.DialContext(ctx)
	})
}

// Stop shuts the server down; later calls fail with Unavailable.
func (s *Server) Stop() {
	if s.grpcSrv != nil {
		s.grpcSrv.Stop()
	}
}

// FailWith makes every call of method fail with err. Passing nil clears it.
func (s *Server) FailWith(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

// Calls returns how many times method was invoked.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Poses returns the poses received by StepSample, in order.
func (s *Server) Poses() []*oaisyspb.PoseType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*oaisyspb.PoseType(nil), s.poses...)
}

// RunIDs returns the distinct run ids seen in request metadata.
func (s *Server) RunIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.runIDs))
	for id := range s.runIDs {
		ids = append(ids, id)
	}
	return ids
}

// Ended reports whether EndSimulation was received.
func (s *Server) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// FilesFor returns the file list the server renders for a sample.
func FilesFor(batchID, sampleID int64, n int) []string {
	names := [...]string{"rgb", "depth", "semantic", "instance"}
	files := make([]string, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, fmt.Sprintf("/tmp/oaisys/batch_%04d/sample_%04d_%s.png", batchID, sampleID, names[i%len(names)]))
	}
	return files
}

// enter records the call and returns the configured failure, if any.
// The caller holds s.mu.
func (s *Server) enter(ctx context.Context, method string) error {
	s.calls[method]++
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		for _, id := range md.Get("x-oaisys-run-id") {
			s.runIDs[id] = struct{}{}
		}
	}
	return s.failures[method]
}

func (s *Server) StepBatch(ctx context.Context, _ *oaisyspb.StepBatchRequest) (*oaisyspb.StepBatchReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "StepBatch"); err != nil {
		return nil, err
	}
	if s.RejectBatch {
		return &oaisyspb.StepBatchReply{SuccessRet: false}, nil
	}
	s.batchID++
	s.sampleID = 0
	s.batchState = stateInProgress
	s.batchSeen = 0
	s.renderState = stateIdle
	return &oaisyspb.StepBatchReply{SuccessRet: true}, nil
}

func (s *Server) BatchCreationFinished(ctx context.Context, _ *oaisyspb.Empty) (*oaisyspb.BatchCreationFinishedReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "BatchCreationFinished"); err != nil {
		return nil, err
	}
	if s.batchState == stateInProgress {
		if s.batchSeen >= s.BatchPolls {
			s.batchState = stateFinished
		}
		s.batchSeen++
	}
	return &oaisyspb.BatchCreationFinishedReply{State: s.batchState}, nil
}

func (s *Server) StepSample(ctx context.Context, in *oaisyspb.StepSampleRequest) (*oaisyspb.StepSampleReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "StepSample"); err != nil {
		return nil, err
	}
	if s.RejectSample {
		return &oaisyspb.StepSampleReply{SuccessRet: false}, nil
	}
	if pose := in.GetPose(); pose != nil {
		s.poses = append(s.poses, pose)
	} else {
		return nil, status.Error(codes.InvalidArgument, "missing pose")
	}
	s.sampleID++
	s.batchState = stateIdle
	s.renderState = stateInProgress
	s.renderSeen = 0
	s.files = FilesFor(s.batchID, s.sampleID, s.FilesPerSample)
	return &oaisyspb.StepSampleReply{
		SuccessRet: true,
		BatchID:    s.batchID,
		SampleID:   s.sampleID,
	}, nil
}

func (s *Server) RenderFinished(ctx context.Context, _ *oaisyspb.Empty) (*oaisyspb.RenderFinishedReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "RenderFinished"); err != nil {
		return nil, err
	}
	if s.renderState == stateInProgress {
		if s.renderSeen >= s.RenderPolls {
			s.renderState = stateFinished
		}
		s.renderSeen++
	}
	reply := &oaisyspb.RenderFinishedReply{State: s.renderState}
	if s.renderState == stateFinished {
		reply.FilePathList = s.files
		s.files = nil
	}
	return reply, nil
}

func (s *Server) EndSimulation(ctx context.Context, _ *oaisyspb.Empty) (*oaisyspb.SuccessMsg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(ctx, "EndSimulation"); err != nil {
		return nil, err
	}
	s.ended = true
	return &oaisyspb.SuccessMsg{SuccessRet: s.EndOutcome}, nil
}
