// Package rpc defines the gRPC contract of the HMM service: the service
// descriptor, its request/response messages and a typed client. Messages
// travel as JSON through the codec registered in this package.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "hmm.v1.HMM"

// Full method names, as seen by interceptors.
const (
	DecodeFullMethod     = "/" + ServiceName + "/Decode"
	LikelihoodFullMethod = "/" + ServiceName + "/Likelihood"
)

// HMMServer is the server API for the HMM service.
type HMMServer interface {
	Decode(context.Context, *DecodeRequest) (*DecodeResponse, error)
	Likelihood(context.Context, *LikelihoodRequest) (*LikelihoodResponse, error)
}

// RegisterHMMServer registers srv with s.
func RegisterHMMServer(s grpc.ServiceRegistrar, srv HMMServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the HMM service to grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HMMServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Decode", Handler: decodeHandler},
		{MethodName: "Likelihood", Handler: likelihoodHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hmm/v1/hmm",
}

func decodeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DecodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HMMServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DecodeFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HMMServer).Decode(ctx, req.(*DecodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func likelihoodHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LikelihoodRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HMMServer).Likelihood(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LikelihoodFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(HMMServer).Likelihood(ctx, req.(*LikelihoodRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// HMMClient is the client API for the HMM service.
type HMMClient interface {
	Decode(ctx context.Context, in *DecodeRequest, opts ...grpc.CallOption) (*DecodeResponse, error)
	Likelihood(ctx context.Context, in *LikelihoodRequest, opts ...grpc.CallOption) (*LikelihoodResponse, error)
}

type hmmClient struct {
	cc grpc.ClientConnInterface
}

// NewHMMClient returns a client that sends every call with the json
// content subtype.
func NewHMMClient(cc grpc.ClientConnInterface) HMMClient {
	return &hmmClient{cc: cc}
}

func (c *hmmClient) Decode(ctx context.Context, in *DecodeRequest, opts ...grpc.CallOption) (*DecodeResponse, error) {
	out := new(DecodeResponse)
	if err := c.cc.Invoke(ctx, DecodeFullMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hmmClient) Likelihood(ctx context.Context, in *LikelihoodRequest, opts ...grpc.CallOption) (*LikelihoodResponse, error) {
	out := new(LikelihoodResponse)
	if err := c.cc.Invoke(ctx, LikelihoodFullMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
