package oaisys

import (
	"context"
	"reflect"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"oaisys_client/internal/oaisys/oaisystest"
	"oaisys_client/internal/shared/types"
)

func dialTestServer(t *testing.T, srv *oaisystest.Server) *Client {
	t.Helper()
	dialer := srv.Start(t)
	client, err := Dial(types.ServerConf{Address: oaisystest.Address}, "run-under-test", dialer)
	if err != nil {
		t.Fatalf("Dial() returned an error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStepBatch(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)

	if !client.StepBatch(context.Background()) {
		t.Fatal("Expected StepBatch to succeed")
	}

	srv.RejectBatch = true
	if client.StepBatch(context.Background()) {
		t.Error("Expected StepBatch to fail when the server rejects the batch")
	}
}

func TestStepBatch_TransportFailure(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)
	srv.FailWith("StepBatch", status.Error(codes.Unavailable, "renderer busy"))

	if client.StepBatch(context.Background()) {
		t.Error("Expected StepBatch to fail on a transport error")
	}
}

func TestStepSample(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)
	ctx := context.Background()
	client.StepBatch(ctx)

	pose := Pose{X: 1, Y: 2, Z: 30, QW: 0.5, QX: 0.5, QY: 0.5, QZ: 0.5}
	batchID, sampleID, ok := client.StepSample(ctx, pose)
	if !ok {
		t.Fatal("Expected StepSample to succeed")
	}
	if batchID != 1 || sampleID != 1 {
		t.Errorf("Expected batch 1 sample 1, got batch %d sample %d", batchID, sampleID)
	}

	_, sampleID, _ = client.StepSample(ctx, pose)
	if sampleID != 2 {
		t.Errorf("Expected the second sample id to be 2, got %d", sampleID)
	}

	got := srv.Poses()
	if len(got) != 2 {
		t.Fatalf("Expected the server to receive 2 poses, got %d", len(got))
	}
	if got[0].X != 1 || got[0].Y != 2 || got[0].Z != 30 || got[0].QW != 0.5 || got[0].QZ != 0.5 {
		t.Errorf("Pose did not survive the round trip: %+v", got[0])
	}
}

func TestStepSample_FailureLeavesIDsUnset(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)
	ctx := context.Background()
	client.StepBatch(ctx)

	srv.RejectSample = true
	if batchID, sampleID, ok := client.StepSample(ctx, IdentityPose(1, 2, 30)); ok || batchID != 0 || sampleID != 0 {
		t.Errorf("Expected a rejected sample to return (0, 0, false), got (%d, %d, %v)", batchID, sampleID, ok)
	}

	srv.RejectSample = false
	srv.FailWith("StepSample", status.Error(codes.Internal, "boom"))
	if _, _, ok := client.StepSample(ctx, IdentityPose(1, 2, 30)); ok {
		t.Error("Expected StepSample to fail on a transport error")
	}
}

func TestRenderFinished_InProgressThenFinished(t *testing.T) {
	srv := oaisystest.NewServer()
	srv.RenderPolls = 2
	client := dialTestServer(t, srv)
	ctx := context.Background()
	client.StepBatch(ctx)
	batchID, sampleID, _ := client.StepSample(ctx, IdentityPose(1, 2, 30))

	for i := 0; i < 2; i++ {
		files, ok := client.RenderFinished(ctx)
		if ok {
			t.Fatalf("Poll %d: expected in-progress render to report false", i)
		}
		if len(files) != 0 {
			t.Fatalf("Poll %d: expected no files while in progress, got %v", i, files)
		}
	}

	files, ok := client.RenderFinished(ctx)
	if !ok {
		t.Fatal("Expected render to be finished on the third poll")
	}
	want := oaisystest.FilesFor(batchID, sampleID, 3)
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Expected files %v in server order, got %v", want, files)
	}
}

func TestRenderFinished_TransportFailure(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)
	srv.FailWith("RenderFinished", status.Error(codes.Unavailable, "down"))

	if files, ok := client.RenderFinished(context.Background()); ok || files != nil {
		t.Errorf("Expected (nil, false), got (%v, %v)", files, ok)
	}
}

func TestBatchCreationFinished(t *testing.T) {
	srv := oaisystest.NewServer()
	srv.BatchPolls = 1
	client := dialTestServer(t, srv)
	ctx := context.Background()

	if code, ok := client.BatchCreationFinished(ctx); ok || code != 0 {
		t.Errorf("Expected idle server to report (0, false), got (%v, %v)", code, ok)
	}

	client.StepBatch(ctx)
	if _, ok := client.BatchCreationFinished(ctx); ok {
		t.Error("Expected in-progress batch to report false")
	}
	code, ok := client.BatchCreationFinished(ctx)
	if !ok || code != StatusFinished {
		t.Errorf("Expected (%v, true), got (%v, %v)", StatusFinished, code, ok)
	}
}

func TestEndSimulation_CopiesServerOutcome(t *testing.T) {
	for _, outcome := range []bool{true, false} {
		srv := oaisystest.NewServer()
		srv.EndOutcome = outcome
		client := dialTestServer(t, srv)

		ended, ok := client.EndSimulation(context.Background())
		if !ok {
			t.Fatalf("outcome=%v: expected transport success to report ok", outcome)
		}
		if ended != outcome {
			t.Errorf("Expected ended=%v, got %v", outcome, ended)
		}
	}
}

func TestEndSimulation_TransportFailure(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)
	srv.Stop()

	if _, ok := client.EndSimulation(context.Background()); ok {
		t.Error("Expected EndSimulation to fail once the server is gone")
	}
}

func TestDial_StampsRunID(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)
	client.StepBatch(context.Background())

	ids := srv.RunIDs()
	if len(ids) != 1 || ids[0] != "run-under-test" {
		t.Errorf("Expected run id 'run-under-test' in metadata, got %v", ids)
	}
}

func TestClose_Twice(t *testing.T) {
	srv := oaisystest.NewServer()
	client := dialTestServer(t, srv)

	if err := client.Close(); err != nil {
		t.Fatalf("Close() returned an error: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Second Close() returned an error: %v", err)
	}
}
