package fountain

import "encoding/binary"

// xorInto XORs src into dst in place, len(dst) == len(src) bytes, using
// wordWidth-byte chunks (1, 2, 4, or 8) for throughput. The result is
// identical for any wordWidth: the granularity only changes how many
// machine words the loop touches per iteration, never the bytes produced.
func xorInto(dst, src []byte, wordWidth int) {
	n := len(src)
	i := 0

	switch wordWidth {
	case 8:
		for ; i+8 <= n; i += 8 {
			a := binary.LittleEndian.Uint64(dst[i:])
			b := binary.LittleEndian.Uint64(src[i:])
			binary.LittleEndian.PutUint64(dst[i:], a^b)
		}
	case 4:
		for ; i+4 <= n; i += 4 {
			a := binary.LittleEndian.Uint32(dst[i:])
			b := binary.LittleEndian.Uint32(src[i:])
			binary.LittleEndian.PutUint32(dst[i:], a^b)
		}
	case 2:
		for ; i+2 <= n; i += 2 {
			a := binary.LittleEndian.Uint16(dst[i:])
			b := binary.LittleEndian.Uint16(src[i:])
			binary.LittleEndian.PutUint16(dst[i:], a^b)
		}
	}

	for ; i < n; i++ {
		dst[i] ^= src[i]
	}
}
