// Package oaisys is a client for the Oaisys synthetic-data simulation server.
//
// Each call performs exactly one blocking round trip. Failures are reported as
// a false result and logged; values returned alongside a false result are zero
// and must not be used.
package oaisys

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"oaisys_client/internal/oaisys/oaisyspb"
	"oaisys_client/internal/shared/logger"
)

// Status is the progress code reported by the status calls.
type Status int32

const (
	StatusIdle       Status = 0
	StatusInProgress Status = 1
	StatusFinished   Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	}
	return "unknown"
}

// Pose places the virtual sensor: a position and a unit quaternion orientation.
type Pose struct {
	X, Y, Z        float64
	QW, QX, QY, QZ float64
}

// IdentityPose returns a pose at the given position with no rotation.
func IdentityPose(x, y, z float64) Pose {
	return Pose{X: x, Y: y, Z: z, QW: 1}
}

func (p Pose) proto() *oaisyspb.PoseType {
	return &oaisyspb.PoseType{
		X: p.X, Y: p.Y, Z: p.Z,
		QW: p.QW, QX: p.QX, QY: p.QY, QZ: p.QZ,
	}
}

// Client owns the connection to one Oaisys server for its whole lifetime.
type Client struct {
	conn *grpc.ClientConn
	stub oaisyspb.OaisysClient
	log  zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

func newClient(conn *grpc.ClientConn) *Client {
	return &Client{
		conn: conn,
		stub: oaisyspb.NewOaisysClient(conn),
		log:  logger.WithComponent("oaisys"),
	}
}

// Close releases the connection. Subsequent calls return the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// StepBatch asks the server to start producing a new batch. It reports true
// only if the call went through and the server accepted the request.
func (c *Client) StepBatch(ctx context.Context) bool {
	reply, err := c.stub.StepBatch(ctx, &oaisyspb.StepBatchRequest{})
	if err != nil {
		c.transportFailure("StepBatch", err)
		return false
	}
	return reply.SuccessRet
}

// StepSample asks the server to render one sample at pose. The ids are only
// returned when ok is true.
func (c *Client) StepSample(ctx context.Context, pose Pose) (batchID, sampleID int64, ok bool) {
	req := &oaisyspb.StepSampleRequest{
		SensorModuleRequest: &oaisyspb.SensorModuleRequest{Pose: pose.proto()},
	}
	reply, err := c.stub.StepSample(ctx, req)
	if err != nil {
		c.transportFailure("StepSample", err)
		return 0, 0, false
	}
	if !reply.SuccessRet {
		return 0, 0, false
	}
	return reply.BatchID, reply.SampleID, true
}

// RenderFinished polls the most recent render. It returns the rendered file
// paths, in server order, once the server reports StatusFinished. Any other
// state yields false, which just means "not yet".
func (c *Client) RenderFinished(ctx context.Context) ([]string, bool) {
	reply, err := c.stub.RenderFinished(ctx, &oaisyspb.Empty{})
	if err != nil {
		c.transportFailure("RenderFinished", err)
		return nil, false
	}
	if Status(reply.State) != StatusFinished {
		return nil, false
	}
	files := make([]string, 0, len(reply.FilePathList))
	for _, path := range reply.FilePathList {
		c.log.Debug().Str("path", path).Msg("Rendered file")
		files = append(files, path)
	}
	return files, true
}

// BatchCreationFinished polls batch creation. It is true only when the server
// reports exactly StatusFinished, which is then returned.
func (c *Client) BatchCreationFinished(ctx context.Context) (Status, bool) {
	reply, err := c.stub.BatchCreationFinished(ctx, &oaisyspb.Empty{})
	if err != nil {
		c.transportFailure("BatchCreationFinished", err)
		return 0, false
	}
	if Status(reply.State) != StatusFinished {
		return 0, false
	}
	return StatusFinished, true
}

// EndSimulation asks the server to tear the simulation down. ok reflects the
// transport only; ended is the server's own outcome, unchanged.
func (c *Client) EndSimulation(ctx context.Context) (ended, ok bool) {
	reply, err := c.stub.EndSimulation(ctx, &oaisyspb.Empty{})
	if err != nil {
		c.transportFailure("EndSimulation", err)
		return false, false
	}
	return reply.SuccessRet, true
}

func (c *Client) transportFailure(call string, err error) {
	c.log.Warn().
		Str("call", call).
		Str("code", status.Code(err).String()).
		Err(err).
		Msg("RPC failed")
}
