// Package api defines the wire surface of the debug service: the message
// types, the codec that carries them, and the hand-maintained service
// descriptor and client that a protoc pass would otherwise generate. The
// messages are plain Go structs on a JSON codec, so the package needs no
// code generation step.
package api

// Empty is the request and response for methods that carry no payload.
type Empty struct{}

// CPUState is a snapshot of the processor registers and the global cycle
// counter.
type CPUState struct {
	A      byte   `json:"a"`
	X      byte   `json:"x"`
	Y      byte   `json:"y"`
	SP     byte   `json:"sp"`
	Status byte   `json:"status"`
	PC     uint16 `json:"pc"`
	Cycles uint64 `json:"cycles"`
}

// MemoryBlockRequest asks for a block of bus memory.
type MemoryBlockRequest struct {
	Address uint32 `json:"address"`
	Size    uint32 `json:"size"`
}

// MemoryBlockResponse carries the requested bytes.
type MemoryBlockResponse struct {
	Data []byte `json:"data"`
}

// LoadProgramRequest places raw program bytes on the bus at the given
// address.
type LoadProgramRequest struct {
	Address uint32 `json:"address"`
	Data    []byte `json:"data"`
}
