// Package ws serves the region streaming protocol over a websocket. A session
// is HELLO/SERVED once, then any number of VIEW/REGION exchanges. The field is
// shared between sessions and guarded by a single mutex; view reads hold it
// only while collecting chunks.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"voxelfield.dev/internal/grid"
	"voxelfield.dev/internal/protocol"
	"voxelfield.dev/internal/terrain"
)

// MaxViewChunks bounds how many chunk keys one VIEW may touch. Requests over
// the limit get a VIEW_LIMIT error instead of a giant REGION.
const MaxViewChunks = 4096

type Server struct {
	mu    sync.Mutex
	field *terrain.Field
	log   *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(field *terrain.Field, logger *log.Logger) *Server {
	return &Server{
		field: field,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if !s.handshake(conn) {
			return
		}

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				_ = writeJSON(conn, protocol.NewError(protocol.ErrBadMessage, "not a protocol message"))
				continue
			}
			if base.Type != protocol.TypeView {
				_ = writeJSON(conn, protocol.NewError(protocol.ErrBadMessage, "expected VIEW"))
				continue
			}
			var view protocol.ViewMsg
			if err := json.Unmarshal(msg, &view); err != nil {
				_ = writeJSON(conn, protocol.NewError(protocol.ErrBadMessage, "malformed VIEW"))
				continue
			}
			if view.ProtocolVersion != protocol.Version {
				_ = writeJSON(conn, protocol.NewError(protocol.ErrBadVersion, "unsupported protocol_version"))
				continue
			}

			resp, errMsg := s.serveView(view)
			if errMsg != nil {
				_ = writeJSON(conn, *errMsg)
				continue
			}
			if err := writeJSON(conn, resp); err != nil {
				return
			}
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) bool {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return false
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return false
	}

	shape := s.field.Level(0).Indexer().ChunkShape()
	served := protocol.ServedMsg{
		Type:            protocol.TypeServed,
		ProtocolVersion: protocol.Version,
		ChunkShape:      [3]int32{shape.X, shape.Y, shape.Z},
		NumLevels:       s.field.NumLevels(),
		AmbientValue:    uint16(s.field.Level(0).Ambient()),
	}
	if err := writeJSON(conn, served); err != nil {
		return false
	}
	if s.log != nil {
		s.log.Printf("session open client=%q", hello.ClientName)
	}
	return true
}

// serveView answers one VIEW under the field lock. Absent chunks are skipped;
// the SERVED ambient value covers them on the client.
func (s *Server) serveView(view protocol.ViewMsg) (protocol.RegionMsg, *protocol.ErrorMsg) {
	if view.Lod < 0 || view.Lod >= s.field.NumLevels() {
		e := protocol.NewError(protocol.ErrBadLod, "lod out of range")
		return protocol.RegionMsg{}, &e
	}

	ext := grid.NewExtent3(
		grid.Pt3(view.Min[0], view.Min[1], view.Min[2]),
		grid.Pt3(view.Shape[0], view.Shape[1], view.Shape[2]),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	level := s.field.Level(view.Lod)
	keys := level.Indexer().ChunkKeysForExtent(ext)
	if len(keys) > MaxViewChunks {
		e := protocol.NewError(protocol.ErrViewLimit, "view intersects too many chunks")
		return protocol.RegionMsg{}, &e
	}

	resp := protocol.RegionMsg{
		Type:            protocol.TypeRegion,
		ProtocolVersion: protocol.Version,
		Lod:             view.Lod,
		Chunks:          []protocol.RegionChunk{},
	}
	for _, key := range keys {
		ch := level.Chunk(key)
		if ch == nil {
			continue
		}
		resp.Chunks = append(resp.Chunks, protocol.RegionChunk{
			Key:    [3]int32{key.X, key.Y, key.Z},
			Voxels: protocol.EncodeVoxels(ch.Array.Data()),
		})
	}
	return resp, nil
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
