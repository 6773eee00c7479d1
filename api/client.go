package api

import (
	"context"

	"google.golang.org/grpc"
)

// DebugClient is the client contract of the debug service.
type DebugClient interface {
	GetCPUState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CPUState, error)
	ReadMemoryBlock(ctx context.Context, in *MemoryBlockRequest, opts ...grpc.CallOption) (*MemoryBlockResponse, error)
	LoadProgram(ctx context.Context, in *LoadProgramRequest, opts ...grpc.CallOption) (*Empty, error)
	Reset(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Pause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Resume(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Step(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CPUState, error)
}

type debugClient struct {
	cc grpc.ClientConnInterface
}

// NewDebugClient returns a DebugClient on the given connection. Calls select
// the service codec, so no dial options are required.
func NewDebugClient(cc grpc.ClientConnInterface) DebugClient {
	return &debugClient{cc: cc}
}

func invoke[Req any, Resp any](c *debugClient, ctx context.Context, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *debugClient) GetCPUState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CPUState, error) {
	return invoke[Empty, CPUState](c, ctx, "GetCPUState", in, opts)
}

func (c *debugClient) ReadMemoryBlock(ctx context.Context, in *MemoryBlockRequest, opts ...grpc.CallOption) (*MemoryBlockResponse, error) {
	return invoke[MemoryBlockRequest, MemoryBlockResponse](c, ctx, "ReadMemoryBlock", in, opts)
}

func (c *debugClient) LoadProgram(ctx context.Context, in *LoadProgramRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[LoadProgramRequest, Empty](c, ctx, "LoadProgram", in, opts)
}

func (c *debugClient) Reset(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty, Empty](c, ctx, "Reset", in, opts)
}

func (c *debugClient) Pause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty, Empty](c, ctx, "Pause", in, opts)
}

func (c *debugClient) Resume(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty, Empty](c, ctx, "Resume", in, opts)
}

func (c *debugClient) Step(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CPUState, error) {
	return invoke[Empty, CPUState](c, ctx, "Step", in, opts)
}
