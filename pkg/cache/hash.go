package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/relabel/pkg/csr"
)

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GraphHash fingerprints a graph's offsets and adjacency. Coordinates are
// included when present because they change what some orderers produce.
func GraphHash(g *csr.Graph) string {
	h := sha256.New()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	write(uint64(g.VertexCount()))
	for _, o := range g.Offsets() {
		write(uint64(o))
	}
	for u := range g.VertexCount() {
		for _, v := range g.NeighborSlice(u) {
			write(uint64(v))
		}
	}
	if g.HasCoordinates() {
		h.Write([]byte("coords"))
		for _, p := range g.Coordinates() {
			for _, x := range p {
				write(math.Float64bits(x))
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
