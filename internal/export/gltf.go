package export

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/arx-os/ifclite/internal/geomath"
	"github.com/arx-os/ifclite/internal/geometry"
)

const (
	gltfComponentFloat        = 5126
	gltfComponentUnsignedInt  = 5125
	gltfModeTriangles         = 4
	gltfTargetArrayBuffer     = 34962
	gltfTargetElementArray    = 34963
)

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltfBuffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ByteOffset    int       `json:"byteOffset"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float64 `json:"max,omitempty"`
	Min           []float64 `json:"min,omitempty"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
	Mode       int            `json:"mode"`
}

type gltfMesh struct {
	Primitives []gltfPrimitive `json:"primitives"`
	Name       string          `json:"name,omitempty"`
}

type gltfNode struct {
	Mesh int `json:"mesh"`
}

type gltfScene struct {
	Nodes []int `json:"nodes"`
}

type gltfDocument struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes"`
	Meshes      []gltfMesh       `json:"meshes"`
	Accessors   []gltfAccessor   `json:"accessors"`
	BufferViews []gltfBufferView `json:"bufferViews"`
	Buffers     []gltfBuffer     `json:"buffers"`
}

// GLTFWriter emits a single self-contained glTF 2.0 JSON document (the
// "embedded" variant: the binary buffer lives in a base64 data URI rather
// than a side .bin file), one mesh/node per non-empty input Element. No pack
// repo ships a glTF SDK, so this is a direct stdlib encoding/json +
// encoding/binary writer.
type GLTFWriter struct{}

func NewGLTFWriter() *GLTFWriter { return &GLTFWriter{} }

// Element is one named mesh to place in the document, named by its
// source express id for round-tripping back to the entity store.
type Element struct {
	ExpressID uint32
	Mesh      geometry.Mesh
}

func (w *GLTFWriter) Write(out io.Writer, elements []Element) error {
	doc := gltfDocument{
		Asset: gltfAsset{Version: "2.0", Generator: "ifclite"},
		Scene: 0,
	}
	var buf []byte
	var sceneNodes []int

	for _, el := range elements {
		if el.Mesh.IsEmpty() {
			continue
		}
		posView := appendVec3BufferView(&buf, &doc, el.Mesh.Positions, gltfTargetArrayBuffer)
		normView := appendVec3BufferView(&buf, &doc, el.Mesh.Normals, gltfTargetArrayBuffer)
		idxView := appendIndexBufferView(&buf, &doc, el.Mesh.Indices)

		posAccessor := len(doc.Accessors)
		doc.Accessors = append(doc.Accessors, gltfAccessor{
			BufferView: posView, ComponentType: gltfComponentFloat,
			Count: len(el.Mesh.Positions), Type: "VEC3",
			Min: vec3Min(el.Mesh.Positions), Max: vec3Max(el.Mesh.Positions),
		})
		normAccessor := len(doc.Accessors)
		doc.Accessors = append(doc.Accessors, gltfAccessor{
			BufferView: normView, ComponentType: gltfComponentFloat,
			Count: len(el.Mesh.Normals), Type: "VEC3",
		})
		idxAccessor := len(doc.Accessors)
		doc.Accessors = append(doc.Accessors, gltfAccessor{
			BufferView: idxView, ComponentType: gltfComponentUnsignedInt,
			Count: len(el.Mesh.Indices), Type: "SCALAR",
		})

		meshIndex := len(doc.Meshes)
		doc.Meshes = append(doc.Meshes, gltfMesh{
			Name: elementName(el.ExpressID),
			Primitives: []gltfPrimitive{{
				Attributes: map[string]int{"POSITION": posAccessor, "NORMAL": normAccessor},
				Indices:    idxAccessor,
				Mode:       gltfModeTriangles,
			}},
		})

		nodeIndex := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, gltfNode{Mesh: meshIndex})
		sceneNodes = append(sceneNodes, nodeIndex)
	}

	doc.Scenes = []gltfScene{{Nodes: sceneNodes}}
	doc.Buffers = []gltfBuffer{{
		ByteLength: len(buf),
		URI:        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf),
	}}

	enc := json.NewEncoder(out)
	return enc.Encode(doc)
}

func elementName(expressID uint32) string {
	return "element-" + strconv.FormatUint(uint64(expressID), 10)
}

// appendVec3BufferView appends vecs as packed little-endian float32
// triples to buf, registering a bufferView, and returns its index.
func appendVec3BufferView(buf *[]byte, doc *gltfDocument, vecs []geomath.Vec3, target int) int {
	offset := len(*buf)
	for _, v := range vecs {
		*buf = appendFloat32(*buf, float32(v.X))
		*buf = appendFloat32(*buf, float32(v.Y))
		*buf = appendFloat32(*buf, float32(v.Z))
	}
	view := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, gltfBufferView{
		Buffer: 0, ByteOffset: offset, ByteLength: len(*buf) - offset, Target: target,
	})
	return view
}

func appendIndexBufferView(buf *[]byte, doc *gltfDocument, indices []uint32) int {
	offset := len(*buf)
	for _, idx := range indices {
		*buf = appendUint32(*buf, idx)
	}
	view := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, gltfBufferView{
		Buffer: 0, ByteOffset: offset, ByteLength: len(*buf) - offset, Target: gltfTargetElementArray,
	})
	return view
}

func appendFloat32(buf []byte, f float32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func vec3Min(vecs []geomath.Vec3) []float64 {
	if len(vecs) == 0 {
		return nil
	}
	min := [3]float64{vecs[0].X, vecs[0].Y, vecs[0].Z}
	for _, v := range vecs[1:] {
		min[0] = math.Min(min[0], v.X)
		min[1] = math.Min(min[1], v.Y)
		min[2] = math.Min(min[2], v.Z)
	}
	return min[:]
}

func vec3Max(vecs []geomath.Vec3) []float64 {
	if len(vecs) == 0 {
		return nil
	}
	max := [3]float64{vecs[0].X, vecs[0].Y, vecs[0].Z}
	for _, v := range vecs[1:] {
		max[0] = math.Max(max[0], v.X)
		max[1] = math.Max(max[1], v.Y)
		max[2] = math.Max(max[2], v.Z)
	}
	return max[:]
}
