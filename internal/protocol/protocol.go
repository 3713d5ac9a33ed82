// Package protocol defines the JSON messages of the region streaming
// endpoint. Chunk payloads travel as base64 varint run-length pairs to keep
// large uniform regions cheap on the wire.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello  = "HELLO"
	TypeServed = "SERVED"
	TypeView   = "VIEW"
	TypeRegion = "REGION"
	TypeError  = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// HelloMsg opens a session.
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name,omitempty"`
}

// ServedMsg answers a HELLO with the field parameters a client needs to
// interpret region payloads.
type ServedMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	ChunkShape      [3]int32 `json:"chunk_shape"`
	NumLevels       int      `json:"num_levels"`
	AmbientValue    uint16   `json:"ambient_value"`
}

// ViewMsg requests every chunk of one LOD intersecting a world extent. The
// extent is in voxel units of the shared key space.
type ViewMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	Lod             int      `json:"lod"`
	Min             [3]int32 `json:"min"`
	Shape           [3]int32 `json:"shape"`
}

// RegionMsg carries the chunks answering one VIEW. Absent chunks are
// omitted; the client fills them with the ambient value.
type RegionMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	Lod             int           `json:"lod"`
	Chunks          []RegionChunk `json:"chunks"`
}

// RegionChunk is one chunk payload: the chunk key plus its voxels as
// base64(varint RLE) in array index order.
type RegionChunk struct {
	Key    [3]int32 `json:"key"`
	Voxels string   `json:"voxels"`
}

type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}

// Error codes.
const (
	ErrBadMessage = "BAD_MESSAGE"
	ErrBadVersion = "BAD_VERSION"
	ErrBadLod     = "BAD_LOD"
	ErrViewLimit  = "VIEW_LIMIT"
)

func NewError(code, msg string) ErrorMsg {
	return ErrorMsg{Type: TypeError, ProtocolVersion: Version, Code: code, Message: msg}
}
