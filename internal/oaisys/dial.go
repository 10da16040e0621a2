package oaisys

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"

	"oaisys_client/internal/oaisys/oaisyspb"
	"oaisys_client/internal/shared/errors"
	"oaisys_client/internal/shared/logger"
	"oaisys_client/internal/shared/types"
)

// RunIDMetadataKey carries the client's run id on every call.
const RunIDMetadataKey = "x-oaisys-run-id"

// Dial connects to the server described by cfg. The server is a trusted local
// co-process, so the transport is unauthenticated and unencrypted. opts are
// applied after the defaults.
func Dial(cfg types.ServerConf, runID string, opts ...grpc.DialOption) (*Client, error) {
	log := logger.WithComponent("oaisys")
	log.Debug().Str("address", cfg.Address).Str("run_id", runID).Msg("Creating connection")

	dialOptions := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(oaisyspb.Codec{})),
		grpc.WithChainUnaryInterceptor(runIDInterceptor(runID, log)),
	}

	if cfg.KeepaliveTime > 0 {
		dialOptions = append(dialOptions, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    cfg.KeepaliveTime,
			Timeout: cfg.KeepaliveTimeout,
		}))
	}

	if cfg.UserAgent != "" {
		dialOptions = append(dialOptions, grpc.WithUserAgent(cfg.UserAgent))
	}

	dialOptions = append(dialOptions, opts...)

	conn, err := grpc.NewClient(cfg.Address, dialOptions...)
	if err != nil {
		return nil, errors.NewError("cannot dial Oaisys server at ", cfg.Address).AtPrefix("oaisys").Base(err)
	}
	return newClient(conn), nil
}

func runIDInterceptor(runID string, log zerolog.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if runID != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, RunIDMetadataKey, runID)
		}
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		log.Debug().
			Str("method", method).
			Dur("elapsed", time.Since(start)).
			Bool("ok", err == nil).
			Msg("RPC finished")
		return err
	}
}
