package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "famicore.Debug"

// DebugServer is the server contract of the debug service.
type DebugServer interface {
	GetCPUState(context.Context, *Empty) (*CPUState, error)
	ReadMemoryBlock(context.Context, *MemoryBlockRequest) (*MemoryBlockResponse, error)
	LoadProgram(context.Context, *LoadProgramRequest) (*Empty, error)
	Reset(context.Context, *Empty) (*Empty, error)
	Pause(context.Context, *Empty) (*Empty, error)
	Resume(context.Context, *Empty) (*Empty, error)
	Step(context.Context, *Empty) (*CPUState, error)
}

// UnimplementedDebugServer may be embedded for forward compatibility.
type UnimplementedDebugServer struct{}

func (UnimplementedDebugServer) GetCPUState(context.Context, *Empty) (*CPUState, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCPUState not implemented")
}

func (UnimplementedDebugServer) ReadMemoryBlock(context.Context, *MemoryBlockRequest) (*MemoryBlockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadMemoryBlock not implemented")
}

func (UnimplementedDebugServer) LoadProgram(context.Context, *LoadProgramRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method LoadProgram not implemented")
}

func (UnimplementedDebugServer) Reset(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Reset not implemented")
}

func (UnimplementedDebugServer) Pause(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Pause not implemented")
}

func (UnimplementedDebugServer) Resume(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Resume not implemented")
}

func (UnimplementedDebugServer) Step(context.Context, *Empty) (*CPUState, error) {
	return nil, status.Error(codes.Unimplemented, "method Step not implemented")
}

// RegisterDebugServer registers the debug service implementation with a gRPC
// server.
func RegisterDebugServer(s grpc.ServiceRegistrar, srv DebugServer) {
	s.RegisterService(&debugServiceDesc, srv)
}

func unary[Req any, Resp any](method string, call func(DebugServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DebugServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(DebugServer), ctx, req.(*Req))
			})
		},
	}
}

var debugServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DebugServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetCPUState", DebugServer.GetCPUState),
		unary("ReadMemoryBlock", DebugServer.ReadMemoryBlock),
		unary("LoadProgram", DebugServer.LoadProgram),
		unary("Reset", DebugServer.Reset),
		unary("Pause", DebugServer.Pause),
		unary("Resume", DebugServer.Resume),
		unary("Step", DebugServer.Step),
	},
	Streams: []grpc.StreamDesc{},
}
