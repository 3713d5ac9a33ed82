// Package codec provides the byte compression backends used by the
// compressed chunk store. Codecs are pure, stateless byte transforms with an
// exact compress/decompress round trip.
package codec

import "fmt"

type Codec interface {
	Compress(src []byte) []byte
	Decompress(src []byte) ([]byte, error)
}

// ByName selects a codec from a config string.
func ByName(name string) (Codec, error) {
	switch name {
	case "zstd":
		return NewZstd(), nil
	case "s2":
		return S2{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want zstd or s2)", name)
	}
}
