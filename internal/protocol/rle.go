package protocol

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeVoxels packs voxel values into base64(varint pairs), the pairs
// being (value, run_len) repeated. Chunk interiors are mostly uniform, so
// this usually beats raw bytes by a wide margin before compression even
// starts.
func EncodeVoxels(vals []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(vals) {
		v := vals[i]
		run := 1
		for j := i + 1; j < len(vals) && vals[j] == v; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(v))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DecodeVoxels reverses EncodeVoxels. want is the expected voxel count; a
// payload that decodes to any other length is rejected.
func DecodeVoxels(b64 string, want int) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, want)
	for i := 0; i < len(raw); {
		v, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if v > 0xFFFF {
			return nil, fmt.Errorf("voxel value too large: %d", v)
		}
		if run == 0 || len(out)+int(run) > want {
			return nil, fmt.Errorf("bad run length %d at %d", run, i)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint16(v))
		}
	}
	if len(out) != want {
		return nil, fmt.Errorf("payload has %d voxels, want %d", len(out), want)
	}
	return out, nil
}
