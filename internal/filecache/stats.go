package filecache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"time"
)

// Stats summarizes a cache entry's contents without requiring the caller to
// decode the full mesh pool: entity/mesh counts, the instance-to-mesh
// dedup ratio, and the wall time the producing build took. It is written
// as its own trailing section so a `cache inspect` style reader can answer
// "was this worth it" by reading one small section instead of decoding
// MESHES.
type Stats struct {
	Entities   int
	Properties int
	Quantities int
	Meshes     int
	Instances  int
	DedupRatio float64 // Instances/Meshes; 1.0 when every instance has a unique mesh
	BuildTime  time.Duration
}

func statsOf(b *Bundle) Stats {
	s := Stats{
		Meshes:    len(b.Meshes),
		Instances: len(b.Instances),
		BuildTime: b.BuildTime,
	}
	if b.Entities != nil {
		s.Entities = b.Entities.Len()
	}
	if b.Properties != nil {
		s.Properties = b.Properties.Len()
	}
	if b.Quantities != nil {
		s.Quantities = b.Quantities.Len()
	}
	if s.Meshes > 0 {
		s.DedupRatio = float64(s.Instances) / float64(s.Meshes)
	}
	return s
}

func encodeStats(s Stats) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, order, uint32(s.Entities))
	binary.Write(&buf, order, uint32(s.Properties))
	binary.Write(&buf, order, uint32(s.Quantities))
	binary.Write(&buf, order, uint32(s.Meshes))
	binary.Write(&buf, order, uint32(s.Instances))
	binary.Write(&buf, order, s.DedupRatio)
	binary.Write(&buf, order, int64(s.BuildTime))
	return buf.Bytes()
}

func decodeStats(payload []byte) (Stats, error) {
	r := bytes.NewReader(payload)
	var s Stats
	var entities, properties, quantities, meshes, instances uint32
	var buildNanos int64
	for _, f := range []any{&entities, &properties, &quantities, &meshes, &instances, &s.DedupRatio, &buildNanos} {
		if err := binary.Read(r, order, f); err != nil {
			return Stats{}, err
		}
	}
	s.Entities = int(entities)
	s.Properties = int(properties)
	s.Quantities = int(quantities)
	s.Meshes = int(meshes)
	s.Instances = int(instances)
	s.BuildTime = time.Duration(buildNanos)
	return s, nil
}

// LoadStats reads only the header and the STATS section of the cache file
// at path, without decoding entities, properties, the graph, or the mesh
// pool — the cheap path for a `cache inspect` command that just wants to
// report savings. It returns (stats, true, nil) only when the file exists,
// parses, and its stored hash matches expectedHash; any other outcome is a
// plain miss, matching Load's policy.
func LoadStats(path string, expectedHash [32]byte) (Stats, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Stats{}, false, nil
	}
	if err != nil {
		return Stats{}, false, err
	}
	defer f.Close()

	hash, sections, err := readContainer(f)
	if errors.Is(err, ErrBadMagic) || errors.Is(err, ErrVersionMismatch) {
		return Stats{}, false, nil
	}
	if err != nil {
		return Stats{}, false, err
	}
	if hash != expectedHash {
		return Stats{}, false, nil
	}

	payload, ok := sectionByTag(sections, TagStats)
	if !ok {
		return Stats{}, false, nil
	}
	stats, err := decodeStats(payload)
	if err != nil {
		return Stats{}, false, nil
	}
	return stats, true, nil
}
