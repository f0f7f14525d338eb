package hasher

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns it as a hex
// string truncated to hexLen characters. 16 hex chars (the full 64 bits)
// is collision-safe for practical batch sizes.
func ContentHash(data []byte, hexLen int) string {
	full := fmt.Sprintf("%016x", xxhash.Sum64(data))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
