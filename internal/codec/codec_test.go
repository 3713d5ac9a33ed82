package codec

import (
	"bytes"
	"math/rand"
	"testing"
)

func testBuffers() [][]byte {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 4096)
	rng.Read(random)

	runs := make([]byte, 8192)
	for i := range runs {
		runs[i] = byte(i / 512)
	}

	return [][]byte{
		nil,
		{},
		{0},
		[]byte("voxels"),
		runs,
		random,
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"zstd": NewZstd(),
		"s2":   S2{},
	}
	for name, c := range codecs {
		for i, in := range testBuffers() {
			out, err := c.Decompress(c.Compress(in))
			if err != nil {
				t.Fatalf("%s buffer %d: decompress: %v", name, i, err)
			}
			if !bytes.Equal(out, in) {
				t.Fatalf("%s buffer %d: round trip mismatch (%d -> %d bytes)", name, i, len(in), len(out))
			}
		}
	}
}

func TestCodecs_CorruptBufferErrors(t *testing.T) {
	codecs := map[string]Codec{
		"zstd": NewZstd(),
		"s2":   S2{},
	}
	for name, c := range codecs {
		if _, err := c.Decompress([]byte("definitely not compressed")); err == nil {
			t.Fatalf("%s: corrupt buffer must not decompress cleanly", name)
		}
	}
}

func TestByName(t *testing.T) {
	if _, err := ByName("zstd"); err != nil {
		t.Fatalf("zstd: %v", err)
	}
	if _, err := ByName("s2"); err != nil {
		t.Fatalf("s2: %v", err)
	}
	if _, err := ByName("lz77"); err == nil {
		t.Fatalf("unknown codec must error")
	}
}
