package oaisyspb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const _ = grpc.SupportPackageIsVersion7

const Oaisys_ServiceName = "oaisys.Oaisys"

const (
	Oaisys_StepBatch_FullMethodName             = "/oaisys.Oaisys/StepBatch"
	Oaisys_StepSample_FullMethodName            = "/oaisys.Oaisys/StepSample"
	Oaisys_RenderFinished_FullMethodName        = "/oaisys.Oaisys/RenderFinished"
	Oaisys_BatchCreationFinished_FullMethodName = "/oaisys.Oaisys/BatchCreationFinished"
	Oaisys_EndSimulation_FullMethodName         = "/oaisys.Oaisys/EndSimulation"
)

// OaisysClient is the client API for the Oaisys service.
//
// Every call is forced through Codec, so the client works on any connection
// regardless of its default codec.
type OaisysClient interface {
	StepBatch(ctx context.Context, in *StepBatchRequest, opts ...grpc.CallOption) (*StepBatchReply, error)
	StepSample(ctx context.Context, in *StepSampleRequest, opts ...grpc.CallOption) (*StepSampleReply, error)
	RenderFinished(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RenderFinishedReply, error)
	BatchCreationFinished(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BatchCreationFinishedReply, error)
	EndSimulation(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SuccessMsg, error)
}

type oaisysClient struct {
	cc grpc.ClientConnInterface
}

func NewOaisysClient(cc grpc.ClientConnInterface) OaisysClient {
	return &oaisysClient{cc}
}

func (c *oaisysClient) invoke(ctx context.Context, method string, in, out Message, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *oaisysClient) StepBatch(ctx context.Context, in *StepBatchRequest, opts ...grpc.CallOption) (*StepBatchReply, error) {
	out := new(StepBatchReply)
	if err := c.invoke(ctx, Oaisys_StepBatch_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oaisysClient) StepSample(ctx context.Context, in *StepSampleRequest, opts ...grpc.CallOption) (*StepSampleReply, error) {
	out := new(StepSampleReply)
	if err := c.invoke(ctx, Oaisys_StepSample_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oaisysClient) RenderFinished(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*RenderFinishedReply, error) {
	out := new(RenderFinishedReply)
	if err := c.invoke(ctx, Oaisys_RenderFinished_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oaisysClient) BatchCreationFinished(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BatchCreationFinishedReply, error) {
	out := new(BatchCreationFinishedReply)
	if err := c.invoke(ctx, Oaisys_BatchCreationFinished_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *oaisysClient) EndSimulation(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SuccessMsg, error) {
	out := new(SuccessMsg)
	if err := c.invoke(ctx, Oaisys_EndSimulation_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// OaisysServer is the server API for the Oaisys service.
type OaisysServer interface {
	StepBatch(context.Context, *StepBatchRequest) (*StepBatchReply, error)
	StepSample(context.Context, *StepSampleRequest) (*StepSampleReply, error)
	RenderFinished(context.Context, *Empty) (*RenderFinishedReply, error)
	BatchCreationFinished(context.Context, *Empty) (*BatchCreationFinishedReply, error)
	EndSimulation(context.Context, *Empty) (*SuccessMsg, error)
}

// UnimplementedOaisysServer can be embedded to have forward compatible implementations.
type UnimplementedOaisysServer struct{}

func (UnimplementedOaisysServer) StepBatch(context.Context, *StepBatchRequest) (*StepBatchReply, error) {
	return nil, status.Error(codes.Unimplemented, "method StepBatch not implemented")
}
func (UnimplementedOaisysServer) StepSample(context.Context, *StepSampleRequest) (*StepSampleReply, error) {
	return nil, status.Error(codes.Unimplemented, "method StepSample not implemented")
}
func (UnimplementedOaisysServer) RenderFinished(context.Context, *Empty) (*RenderFinishedReply, error) {
	return nil, status.Error(codes.Unimplemented, "method RenderFinished not implemented")
}
func (UnimplementedOaisysServer) BatchCreationFinished(context.Context, *Empty) (*BatchCreationFinishedReply, error) {
	return nil, status.Error(codes.Unimplemented, "method BatchCreationFinished not implemented")
}
func (UnimplementedOaisysServer) EndSimulation(context.Context, *Empty) (*SuccessMsg, error) {
	return nil, status.Error(codes.Unimplemented, "method EndSimulation not implemented")
}

// NewServer returns a gRPC server that decodes requests with Codec.
func NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ForceServerCodec(Codec{})}, opts...)
	return grpc.NewServer(opts...)
}

func RegisterOaisysServer(s grpc.ServiceRegistrar, srv OaisysServer) {
	s.RegisterService(&Oaisys_ServiceDesc, srv)
}

func unaryHandler[Req Message](method string, call func(OaisysServer, context.Context, Req) (any, error), newReq func() Req) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OaisysServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OaisysServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Oaisys_ServiceDesc is the grpc.ServiceDesc for the Oaisys service.
var Oaisys_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Oaisys_ServiceName,
	HandlerType: (*OaisysServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StepBatch",
			Handler: unaryHandler(Oaisys_StepBatch_FullMethodName,
				func(s OaisysServer, ctx context.Context, in *StepBatchRequest) (any, error) { return s.StepBatch(ctx, in) },
				func() *StepBatchRequest { return new(StepBatchRequest) }),
		},
		{
			MethodName: "StepSample",
			Handler: unaryHandler(Oaisys_StepSample_FullMethodName,
				func(s OaisysServer, ctx context.Context, in *StepSampleRequest) (any, error) { return s.StepSample(ctx, in) },
				func() *StepSampleRequest { return new(StepSampleRequest) }),
		},
		{
			MethodName: "RenderFinished",
			Handler: unaryHandler(Oaisys_RenderFinished_FullMethodName,
				func(s OaisysServer, ctx context.Context, in *Empty) (any, error) { return s.RenderFinished(ctx, in) },
				newEmpty),
		},
		{
			MethodName: "BatchCreationFinished",
			Handler: unaryHandler(Oaisys_BatchCreationFinished_FullMethodName,
				func(s OaisysServer, ctx context.Context, in *Empty) (any, error) { return s.BatchCreationFinished(ctx, in) },
				newEmpty),
		},
		{
			MethodName: "EndSimulation",
			Handler: unaryHandler(Oaisys_EndSimulation_FullMethodName,
				func(s OaisysServer, ctx context.Context, in *Empty) (any, error) { return s.EndSimulation(ctx, in) },
				newEmpty),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "oaisys.proto",
}

func newEmpty() *Empty { return new(Empty) }
