package scene

import (
	"fmt"
	"math"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/learnopengl/assets"
	"github.com/richinsley/learnopengl/graphics"
	"github.com/richinsley/learnopengl/shader"
	"github.com/richinsley/learnopengl/source"
)

var (
	white  = mgl32.Vec4{1, 1, 1, 1}
	orange = mgl32.Vec4{0.7890625, 0.5390625, 0.2890625, 1}
	teal   = mgl32.Vec4{0.2, 0.3, 0.3, 1}
)

func init() {
	Register("rectangle", func() Scene { return newRectangle() })
	Register("two-triangles", func() Scene { return newTwoTriangles() })
	Register("two-colors", func() Scene { return newTwoColors() })
	Register("blink", func() Scene { return newBlink() })
	Register("interpolation", func() Scene { return newInterpolation() })
}

// base carries what every tutorial has: a clear color, programs and meshes.
type base struct {
	name     string
	vertex   string
	fragment string
	clear    mgl32.Vec4
	programs *shader.Arena
	meshes   []*mesh
}

func (b *base) Name() string { return b.name }

func (b *base) Shaders() (string, string) { return b.vertex, b.fragment }

func (b *base) build(g graphics.GL, p source.Provider, vertex, fragment string) (*shader.Program, error) {
	if b.programs == nil {
		b.programs = shader.NewArena(g)
	}
	prog, err := shader.BuildFromProvider(g, p, vertex, fragment)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", b.name, err)
	}
	b.programs.Add(prog)
	return prog, nil
}

func (b *base) clearFrame() {
	gl.ClearColor(b.clear[0], b.clear[1], b.clear[2], b.clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *base) Destroy() {
	for _, m := range b.meshes {
		m.destroy()
	}
	b.meshes = nil
	if b.programs != nil {
		b.programs.ReleaseAll()
	}
}

// rectangle is a red quad drawn from an element buffer.
type rectangle struct {
	base
	program *shader.Program
}

var rectangleVertices = []float32{
	-0.5, 0.5, 0.0,  // top left
	0.5, 0.5, 0.0,   // top right
	-0.5, -0.5, 0.0, // bottom left
	0.5, -0.5, 0.0,  // bottom right
}

var rectangleIndices = []uint32{
	0, 1, 2,
	1, 2, 3,
}

func newRectangle() *rectangle {
	return &rectangle{base: base{name: "rectangle", vertex: assets.PositionVert, fragment: assets.RedFrag, clear: white}}
}

func (s *rectangle) Init(g graphics.GL, p source.Provider) error {
	var err error
	if s.program, err = s.build(g, p, s.vertex, s.fragment); err != nil {
		return err
	}
	s.meshes = append(s.meshes, newMesh(rectangleVertices, rectangleIndices, 3))
	return nil
}

func (s *rectangle) Draw(t float64) {
	s.clearFrame()
	s.program.Use()
	s.meshes[0].draw()
}

// twoTriangles puts two triangles in one vertex buffer.
type twoTriangles struct {
	base
	program *shader.Program
}

var twoTriangleVertices = []float32{
	// upper
	-0.5, 0.1, 0.0,
	0.5, 0.1, 0.0,
	0.0, 0.85, 0.0,
	// lower
	-0.5, -0.1, 0.0,
	0.5, -0.1, 0.0,
	0.0, -0.85, 0.0,
}

func newTwoTriangles() *twoTriangles {
	return &twoTriangles{base: base{name: "two-triangles", vertex: assets.PositionVert, fragment: assets.RedFrag, clear: white}}
}

func (s *twoTriangles) Init(g graphics.GL, p source.Provider) error {
	var err error
	if s.program, err = s.build(g, p, s.vertex, s.fragment); err != nil {
		return err
	}
	s.meshes = append(s.meshes, newMesh(twoTriangleVertices, nil, 3))
	return nil
}

func (s *twoTriangles) Draw(t float64) {
	s.clearFrame()
	s.program.Use()
	s.meshes[0].draw()
}

// twoColors draws the same two triangles from separate vertex arrays,
// each with its own program.
type twoColors struct {
	base
	upper, lower *shader.Program
}

func newTwoColors() *twoColors {
	return &twoColors{base: base{name: "two-colors", vertex: assets.PositionVert, fragment: assets.SlateFrag, clear: orange}}
}

func (s *twoColors) Init(g graphics.GL, p source.Provider) error {
	var err error
	if s.upper, err = s.build(g, p, s.vertex, s.fragment); err != nil {
		return err
	}
	if s.lower, err = s.build(g, p, s.vertex, assets.MistFrag); err != nil {
		return err
	}
	s.meshes = append(s.meshes,
		newMesh(twoTriangleVertices[:9], nil, 3),
		newMesh(twoTriangleVertices[9:], nil, 3),
	)
	return nil
}

func (s *twoColors) Draw(t float64) {
	s.clearFrame()
	s.upper.Use()
	s.meshes[0].draw()
	s.lower.Use()
	s.meshes[1].draw()
}

// blink pulses a triangle between black and red.
type blink struct {
	base
	program *shader.Program
}

var triangleVertices = []float32{
	-0.5, -0.5, 0.0, // left
	0.5, -0.5, 0.0,  // right
	0.0, 0.5, 0.0,   // top
}

// BlinkColor is the color of the blinking triangle at time t. The red
// channel snaps between 0 and 1, five radians per second.
func BlinkColor(t float64) mgl32.Vec4 {
	red := math.Round(math.Sin(5*t)/2 + 0.5)
	return mgl32.Vec4{float32(red), 0, 0, 1}
}

func newBlink() *blink {
	return &blink{base: base{name: "blink", vertex: assets.PositionVert, fragment: assets.UniformColorFrag, clear: white}}
}

func (s *blink) Init(g graphics.GL, p source.Provider) error {
	var err error
	if s.program, err = s.build(g, p, s.vertex, s.fragment); err != nil {
		return err
	}
	s.meshes = append(s.meshes, newMesh(triangleVertices, nil, 3))
	return nil
}

func (s *blink) Draw(t float64) {
	s.clearFrame()
	s.program.SetVec4("ourColor", BlinkColor(t))
	s.meshes[0].draw()
}

// interpolation gives each corner its own color and lets the rasterizer
// blend between them.
type interpolation struct {
	base
	program *shader.Program
}

var colorTriangleVertices = []float32{
	// position      // color
	0.5, -0.5, 0.0, 1.0, 0.0, 0.0,  // bottom right
	-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,   // top
}

func newInterpolation() *interpolation {
	return &interpolation{base: base{name: "interpolation", vertex: assets.InterpolationVert, fragment: assets.InterpolationFrag, clear: teal}}
}

func (s *interpolation) Init(g graphics.GL, p source.Provider) error {
	var err error
	if s.program, err = s.build(g, p, s.vertex, s.fragment); err != nil {
		return err
	}
	s.meshes = append(s.meshes, newMesh(colorTriangleVertices, nil, 3, 3))
	return nil
}

func (s *interpolation) Draw(t float64) {
	s.clearFrame()
	s.program.Use()
	s.meshes[0].draw()
}
