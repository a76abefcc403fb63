package filecache

import (
	"crypto/sha256"
	"path/filepath"
	"testing"
	"time"

	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/geometry"
	"github.com/arx-os/ifclite/internal/graph"
	"github.com/arx-os/ifclite/internal/hierarchy"
	"github.com/arx-os/ifclite/internal/intern"
	"github.com/arx-os/ifclite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestBundle() *Bundle {
	table := intern.New()
	wallName := table.Intern("Wall-01")

	types := store.NewTypeTable()
	wallEnum := types.EnumFor("IFCWALL")

	eb := store.NewEntityBuilder(types)
	eb.Add(store.EntityRow{
		ExpressID: 10, TypeEnum: wallEnum, Name: wallName,
		ContainedInStorey: -1, DefinedByType: -1, GeometryIndex: -1,
		Flags: store.HasGeometry,
	})
	entities := eb.Build()

	pb := store.NewPropertyBuilder()
	pb.Add(store.PropertyRow{EntityID: 10, Discriminator: store.PropReal, ValueReal: 3.5})
	props := pb.Build()

	qb := store.NewQuantityBuilder()
	qb.Add(store.QuantityRow{EntityID: 10, Type: store.QuantityLength, Value: 2.0, Formula: -1})
	quantities := qb.Build()

	gb := graph.NewBuilder()
	gb.Add(graph.Edge{Source: 1, Target: 10, Type: graph.ContainsElements, RelID: 99})
	g := gb.Build()

	h := &hierarchy.Hierarchy{Root: &hierarchy.Node{
		ExpressID: 1, Type: "IFCBUILDINGSTOREY", Elevation: 3.0, HasElev: true,
		Elements: []uint32{10},
	}}

	pool := NewMeshPool()
	mesh := geometry.Mesh{
		Positions: []geomath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Normals:   []geomath.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
		Indices:   []uint32{0, 1, 2},
	}
	meshIdx := pool.Add(mesh)

	return &Bundle{
		Entities:   entities,
		Properties: props,
		Quantities: quantities,
		Graph:      g,
		Strings:    table,
		Spatial:    h,
		Meshes:     pool.Meshes(),
		Instances: []Instance{
			{MeshIndex: meshIdx, Transform: IdentityTransform, Color: geometry.RGBA{R: 1, A: 1}, ExpressID: 10},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.ifclitecache")
	hash := sha256.Sum256([]byte("source bytes"))

	b := buildTestBundle()
	require.NoError(t, Save(path, hash, b))

	loaded, ok, err := Load(path, hash)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1, loaded.Entities.Len())
	row := loaded.Entities.Row(0)
	assert.Equal(t, uint32(10), row.ExpressID)
	assert.Equal(t, "Wall-01", loaded.Strings.Get(row.Name))
	assert.Equal(t, "IFCWALL", loaded.Entities.TypeName(row.TypeEnum))

	require.Equal(t, 1, loaded.Properties.Len())
	assert.InDelta(t, 3.5, loaded.Properties.Row(0).ValueReal, 1e-9)

	require.Equal(t, 1, loaded.Quantities.Len())
	assert.InDelta(t, 2.0, loaded.Quantities.Row(0).Value, 1e-9)

	related := loaded.Graph.GetRelated(1, graph.ContainsElements, graph.Forward)
	require.Len(t, related, 1)
	assert.Equal(t, uint32(10), related[0])

	require.NotNil(t, loaded.Spatial.Root)
	assert.Equal(t, "IFCBUILDINGSTOREY", loaded.Spatial.Root.Type)
	assert.Equal(t, []uint32{10}, loaded.Spatial.Root.Elements)

	require.Len(t, loaded.Meshes, 1)
	assert.Equal(t, 1, loaded.Meshes[0].TriangleCount()) // sanity: 1 triangle
	require.Len(t, loaded.Instances, 1)
	assert.Equal(t, uint32(10), loaded.Instances[0].ExpressID)
	assert.InDelta(t, 1.0, loaded.Instances[0].Color.R, 1e-9)
}

func TestLoadStatsWithoutDecodingMeshes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.ifclitecache")
	hash := sha256.Sum256([]byte("source bytes"))

	b := buildTestBundle()
	b.BuildTime = 42 * time.Millisecond
	require.NoError(t, Save(path, hash, b))

	stats, ok, err := LoadStats(path, hash)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, stats.Entities)
	assert.Equal(t, 1, stats.Properties)
	assert.Equal(t, 1, stats.Quantities)
	assert.Equal(t, 1, stats.Meshes)
	assert.Equal(t, 1, stats.Instances)
	assert.InDelta(t, 1.0, stats.DedupRatio, 1e-9)
	assert.Equal(t, 42*time.Millisecond, stats.BuildTime)
}

func TestLoadMissingFileIsMiss(t *testing.T) {
	dir := t.TempDir()
	hash := sha256.Sum256([]byte("x"))
	_, ok, err := Load(filepath.Join(dir, "nope.cache"), hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadHashMismatchIsMiss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.ifclitecache")
	b := buildTestBundle()
	require.NoError(t, Save(path, sha256.Sum256([]byte("v1")), b))

	_, ok, err := Load(path, sha256.Sum256([]byte("v2")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMeshPoolDedupesIdenticalMeshes(t *testing.T) {
	pool := NewMeshPool()
	mesh := geometry.Mesh{
		Positions: []geomath.Vec3{{X: 0}, {X: 1}, {X: 2}},
		Normals:   []geomath.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
		Indices:   []uint32{0, 1, 2},
	}
	a := pool.Add(mesh)
	b := pool.Add(mesh)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, pool.Len())
}
