package codec

import "github.com/klauspost/compress/zstd"

// Zstd compresses with a shared encoder/decoder pair. EncodeAll/DecodeAll
// are safe for concurrent use, so one Zstd value can back many stores.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewZstd() *Zstd {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		panic("codec: zstd encoder: " + err.Error())
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder: " + err.Error())
	}
	return &Zstd{enc: enc, dec: dec}
}

func (z *Zstd) Compress(src []byte) []byte {
	return z.enc.EncodeAll(src, nil)
}

func (z *Zstd) Decompress(src []byte) ([]byte, error) {
	return z.dec.DecodeAll(src, nil)
}
