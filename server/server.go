package server

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/halfcarry/famicore/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Machine defines the methods the debug service needs from the console.
type Machine interface {
	CPUState() (a, x, y, sp, p byte, pc uint16, cycles uint64)
	ReadBlock(addr uint16, size int) ([]byte, error)
	LoadProgram(addr uint16, data []byte) error
	Reset()
	SetPaused(bool)
	StepInstruction()
}

// DebugServer exposes the machine over gRPC for external debuggers.
type DebugServer struct {
	api.UnimplementedDebugServer

	machine  Machine
	listener net.Listener
	server   *grpc.Server
}

// NewDebugServer creates a debug server driving the given machine.
func NewDebugServer(machine Machine) *DebugServer {
	return &DebugServer{machine: machine}
}

// GetCPUState returns the CPU register values.
func (s *DebugServer) GetCPUState(ctx context.Context, in *api.Empty) (*api.CPUState, error) {
	return s.cpuState(), nil
}

// ReadMemoryBlock returns a block of raw bus memory.
func (s *DebugServer) ReadMemoryBlock(ctx context.Context, in *api.MemoryBlockRequest) (*api.MemoryBlockResponse, error) {
	if in.Address > 0xFFFF {
		return nil, status.Errorf(codes.InvalidArgument, "address $%X outside the 16-bit bus", in.Address)
	}

	data, err := s.machine.ReadBlock(uint16(in.Address), int(in.Size))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &api.MemoryBlockResponse{Data: data}, nil
}

// LoadProgram writes raw program bytes to the bus.
func (s *DebugServer) LoadProgram(ctx context.Context, in *api.LoadProgramRequest) (*api.Empty, error) {
	if in.Address > 0xFFFF {
		return nil, status.Errorf(codes.InvalidArgument, "address $%X outside the 16-bit bus", in.Address)
	}

	if err := s.machine.LoadProgram(uint16(in.Address), in.Data); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &api.Empty{}, nil
}

// Reset triggers a CPU reset.
func (s *DebugServer) Reset(ctx context.Context, in *api.Empty) (*api.Empty, error) {
	s.machine.Reset()
	return &api.Empty{}, nil
}

// Pause suspends the clock loop.
func (s *DebugServer) Pause(ctx context.Context, in *api.Empty) (*api.Empty, error) {
	s.machine.SetPaused(true)
	return &api.Empty{}, nil
}

// Resume restarts the clock loop.
func (s *DebugServer) Resume(ctx context.Context, in *api.Empty) (*api.Empty, error) {
	s.machine.SetPaused(false)
	return &api.Empty{}, nil
}

// Step advances the CPU by one full instruction and returns the resulting
// register state.
func (s *DebugServer) Step(ctx context.Context, in *api.Empty) (*api.CPUState, error) {
	s.machine.StepInstruction()
	return s.cpuState(), nil
}

func (s *DebugServer) cpuState() *api.CPUState {
	a, x, y, sp, p, pc, cycles := s.machine.CPUState()
	return &api.CPUState{
		A:      a,
		X:      x,
		Y:      y,
		SP:     sp,
		Status: p,
		PC:     pc,
		Cycles: cycles,
	}
}

// Start begins listening for gRPC connections on the given port.
func (s *DebugServer) Start(port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = lis
	s.server = grpc.NewServer()
	api.RegisterDebugServer(s.server, s)

	log.Printf("debug server listening on :%d", port)

	// Run the server in a background goroutine
	go func() {
		if err := s.server.Serve(lis); err != nil {
			log.Printf("debug server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the debug server.
func (s *DebugServer) Stop() {
	if s.server != nil {
		s.server.GracefulStop()
	}
}
