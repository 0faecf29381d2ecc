package node

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ParamKey computes the content key identifying this (type ID, parameter
// bundle) combination. Identical combinations always produce identical keys,
// so grids can reuse one registry entry for repeated assignments.
//
// The key is a stable hash over a canonical serialization: parameter names
// are sorted and every value is encoded in a fixed little-endian layout, so
// the key does not depend on map iteration order or on in-process hashing.
// Key 0 is reserved to mean "node never classified".
func (t *Type) ParamKey() uint64 {
	h := xxhash.New()

	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], t.Def.ID)
	h.Write(buf[:4])

	names := make([]string, 0, len(t.Params))
	for name := range t.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := t.Params[name]
		h.WriteString(name)
		h.Write([]byte{0, byte(p.Kind)})
		switch p.Kind {
		case ParamScalar:
			writeFloat(h, buf[:], p.Scalar)
		case ParamTuple:
			writeLen(h, buf[:], len(p.Tuple))
			for _, v := range p.Tuple {
				writeFloat(h, buf[:], v)
			}
		case ParamField:
			writeLen(h, buf[:], len(p.Field))
			for _, v := range p.Field {
				writeFloat(h, buf[:], v)
			}
		case ParamDynamic:
			if p.Expr != nil {
				h.WriteString(p.Expr.Source)
				flags := byte(0)
				if p.Expr.TimeDependent {
					flags |= 1
				}
				if p.Expr.SpaceDependent {
					flags |= 2
				}
				h.Write([]byte{0, flags})
			}
		}
	}

	key := h.Sum64()
	if key == 0 {
		// 0 marks unclassified nodes in the param key map.
		key = 1
	}
	return key
}

func writeFloat(h *xxhash.Digest, buf []byte, v float64) {
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(v))
	h.Write(buf[:8])
}

func writeLen(h *xxhash.Digest, buf []byte, n int) {
	binary.LittleEndian.PutUint64(buf[:8], uint64(n))
	h.Write(buf[:8])
}
