package filecache

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/geometry"
)

// meshEntry is one deduplicated mesh in the pool: already baked into
// whatever local space the producer (the stream session) resolved it to.
type meshEntry struct {
	Positions []geomath.Vec3
	Normals   []geomath.Vec3
	Indices   []uint32
}

// Instance is one element's placement of a pooled mesh. Transform is the
// identity 4x4 (row-major) for meshes the geometry processor already baked
// into final coordinates; a future per-instance-transform pipeline would
// populate it from the source IfcMappedItem/placement instead of baking.
type Instance struct {
	MeshIndex uint32
	Transform [16]float32
	Color     geometry.RGBA
	ExpressID uint32
}

// IdentityTransform is the baked-geometry default: geometry is already in
// its final coordinates, so the per-instance transform is a no-op.
var IdentityTransform = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// MeshPool deduplicates meshes by the content hash of their
// positions++normals++indices, matching the cache format's MESHES section.
type MeshPool struct {
	entries []meshEntry
	index   map[[32]byte]uint32
}

func NewMeshPool() *MeshPool {
	return &MeshPool{index: make(map[[32]byte]uint32)}
}

// Add interns mesh into the pool, returning its pool index. An
// identical mesh (by content hash) already present is reused rather than
// duplicated.
func (p *MeshPool) Add(mesh geometry.Mesh) uint32 {
	h := hashMesh(mesh)
	if idx, ok := p.index[h]; ok {
		return idx
	}
	idx := uint32(len(p.entries))
	p.entries = append(p.entries, meshEntry{
		Positions: mesh.Positions,
		Normals:   mesh.Normals,
		Indices:   mesh.Indices,
	})
	p.index[h] = idx
	return idx
}

func (p *MeshPool) Len() int { return len(p.entries) }

// Meshes returns the pool's deduplicated meshes in pool-index order, ready
// to hand to a Bundle for Save.
func (p *MeshPool) Meshes() []geometry.Mesh {
	out := make([]geometry.Mesh, len(p.entries))
	for i, e := range p.entries {
		out[i] = geometry.Mesh{Positions: e.Positions, Normals: e.Normals, Indices: e.Indices}
	}
	return out
}

func hashMesh(mesh geometry.Mesh) [32]byte {
	var buf bytes.Buffer
	for _, v := range mesh.Positions {
		binary.Write(&buf, order, float32(v.X))
		binary.Write(&buf, order, float32(v.Y))
		binary.Write(&buf, order, float32(v.Z))
	}
	for _, v := range mesh.Normals {
		binary.Write(&buf, order, float32(v.X))
		binary.Write(&buf, order, float32(v.Y))
		binary.Write(&buf, order, float32(v.Z))
	}
	binary.Write(&buf, order, mesh.Indices)
	return sha256.Sum256(buf.Bytes())
}

func encodeMeshes(meshes []geometry.Mesh) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, order, uint32(len(meshes)))
	for _, m := range meshes {
		writeVec3s(&buf, m.Positions)
		writeVec3s(&buf, m.Normals)
		binary.Write(&buf, order, uint32(len(m.Indices)))
		binary.Write(&buf, order, m.Indices)
	}
	return buf.Bytes()
}

func writeVec3s(buf *bytes.Buffer, vs []geomath.Vec3) {
	binary.Write(buf, order, uint32(len(vs)))
	for _, v := range vs {
		binary.Write(buf, order, float32(v.X))
		binary.Write(buf, order, float32(v.Y))
		binary.Write(buf, order, float32(v.Z))
	}
}

func readVec3s(r *bytes.Reader) ([]geomath.Vec3, error) {
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	out := make([]geomath.Vec3, n)
	for i := range out {
		var x, y, z float32
		if err := binary.Read(r, order, &x); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &y); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &z); err != nil {
			return nil, err
		}
		out[i] = geomath.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
	}
	return out, nil
}

func decodeMeshes(payload []byte) ([]geometry.Mesh, error) {
	r := bytes.NewReader(payload)
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	meshes := make([]geometry.Mesh, n)
	for i := range meshes {
		positions, err := readVec3s(r)
		if err != nil {
			return nil, err
		}
		normals, err := readVec3s(r)
		if err != nil {
			return nil, err
		}
		var idxCount uint32
		if err := binary.Read(r, order, &idxCount); err != nil {
			return nil, err
		}
		indices := make([]uint32, idxCount)
		if err := binary.Read(r, order, indices); err != nil {
			return nil, err
		}
		meshes[i] = geometry.Mesh{Positions: positions, Normals: normals, Indices: indices}
	}
	return meshes, nil
}

func encodeInstances(instances []Instance) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, order, uint32(len(instances)))
	for _, inst := range instances {
		binary.Write(&buf, order, inst.MeshIndex)
		binary.Write(&buf, order, inst.Transform)
		binary.Write(&buf, order, float32(inst.Color.R))
		binary.Write(&buf, order, float32(inst.Color.G))
		binary.Write(&buf, order, float32(inst.Color.B))
		binary.Write(&buf, order, float32(inst.Color.A))
		binary.Write(&buf, order, inst.ExpressID)
	}
	return buf.Bytes()
}

func decodeInstances(payload []byte) ([]Instance, error) {
	r := bytes.NewReader(payload)
	var n uint32
	if err := binary.Read(r, order, &n); err != nil {
		return nil, err
	}
	out := make([]Instance, n)
	for i := range out {
		var meshIndex uint32
		var transform [16]float32
		var rr, gg, bb, aa float32
		var expressID uint32
		if err := binary.Read(r, order, &meshIndex); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &transform); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &rr); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &gg); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &bb); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &aa); err != nil {
			return nil, err
		}
		if err := binary.Read(r, order, &expressID); err != nil {
			return nil, err
		}
		out[i] = Instance{
			MeshIndex: meshIndex,
			Transform: transform,
			Color:     geometry.RGBA{R: float64(rr), G: float64(gg), B: float64(bb), A: float64(aa)},
			ExpressID: expressID,
		}
	}
	return out, nil
}
