package server

import (
	"context"
	"net"
	"testing"

	"github.com/halfcarry/famicore/api"
	"github.com/halfcarry/famicore/console"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func dialTestServer(t *testing.T) api.DebugClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	api.RegisterDebugServer(srv, NewDebugServer(console.New()))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	return api.NewDebugClient(conn)
}

func TestDebugSession(t *testing.T) {
	client := dialTestServer(t)
	ctx := context.Background()

	_, err := client.LoadProgram(ctx, &api.LoadProgramRequest{
		Address: 0,
		Data: []byte{
			0x69, 0x02, // ADC #$02
			0x69, 0x03, // ADC #$03
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	state, err := client.Step(ctx, &api.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if state.A != 2 || state.PC != 2 {
		t.Errorf("after step: A=%02X PC=%04X", state.A, state.PC)
	}

	state, err = client.Step(ctx, &api.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if state.A != 5 {
		t.Errorf("after second step: A=%02X, want 05", state.A)
	}

	mem, err := client.ReadMemoryBlock(ctx, &api.MemoryBlockRequest{Address: 0, Size: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(mem.Data) != 4 || mem.Data[0] != 0x69 {
		t.Errorf("memory read returned % X", mem.Data)
	}

	if _, err := client.Reset(ctx, &api.Empty{}); err != nil {
		t.Fatal(err)
	}
	state, err = client.GetCPUState(ctx, &api.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if state.A != 0 || state.PC != 0 || state.Cycles != 0 {
		t.Errorf("after reset: %+v", state)
	}
}

func TestReadMemoryBlockRejectsBadRange(t *testing.T) {
	client := dialTestServer(t)

	_, err := client.ReadMemoryBlock(context.Background(), &api.MemoryBlockRequest{
		Address: 0x8000,
		Size:    16,
	})
	if err == nil {
		t.Error("expected an error for a block in unimplemented space")
	}
}

func TestPauseResume(t *testing.T) {
	client := dialTestServer(t)
	ctx := context.Background()

	if _, err := client.Pause(ctx, &api.Empty{}); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Resume(ctx, &api.Empty{}); err != nil {
		t.Fatal(err)
	}
}
