package render

import (
	"fmt"
	"path/filepath"

	"voxeldraw/internal/graphics"
	"voxeldraw/internal/occlusion"
	"voxeldraw/internal/quad"
)

// PipelineKey selects a structural shader variant. Each distinct key
// compiles its own program; none of these toggles exist as runtime
// branches in the shaders.
type PipelineKey uint32

const (
	KeyDepthPrepass PipelineKey = 1 << iota
	KeyNormalPrepass
	KeyMotionVectorPrepass
	KeyDeferred
	KeyDepthClampOrtho
	KeyVertexColors
	KeyInstanceIndex
)

// Has reports whether all the given flags are set.
func (k PipelineKey) Has(flags PipelineKey) bool {
	return k&flags == flags
}

// Prepass reports whether the key selects the geometry-only pipeline
// pair instead of the full-shading one.
func (k PipelineKey) Prepass() bool {
	return k&(KeyDepthPrepass|KeyNormalPrepass|KeyMotionVectorPrepass) != 0
}

// VariantConfig holds the build-time UV correction masks XOR'd against
// each quad's bitfield word during vertex reconstruction. Fixed when
// the pipeline is built, never per-frame.
type VariantConfig struct {
	RotationMask uint32
	FlipUVXMask  uint32
	FlipUVYMask  uint32
}

// CorrectionWord is the combined XOR mask applied to quad bitfields.
func (c VariantConfig) CorrectionWord() uint32 {
	return c.RotationMask<<quad.RotationShift | c.FlipUVXMask | c.FlipUVYMask
}

// ShaderDefines lists the #defines injected into every chunk shader
// variant: the quad bit layout, the occlusion buffer shape, the UV
// correction masks, and one flag per structural toggle. The quad and
// occlusion packages are the single source of truth for the constants.
func (k PipelineKey) ShaderDefines(cfg VariantConfig) []graphics.Define {
	defs := []graphics.Define{
		{Name: "QUAD_ROTATION_MASK", Value: fmt.Sprintf("%du", quad.RotationMask)},
		{Name: "QUAD_ROTATION_SHIFT", Value: fmt.Sprintf("%du", quad.RotationShift)},
		{Name: "QUAD_FACE_MASK", Value: fmt.Sprintf("%du", quad.FaceMask)},
		{Name: "QUAD_FACE_SHIFT", Value: fmt.Sprintf("%du", quad.FaceShift)},
		{Name: "QUAD_FLIP_UV_X_BIT", Value: fmt.Sprintf("%du", quad.FlipUVXBit)},
		{Name: "QUAD_FLIP_UV_Y_BIT", Value: fmt.Sprintf("%du", quad.FlipUVYBit)},
		{Name: "UV_CORRECTION_MASK", Value: fmt.Sprintf("%du", cfg.CorrectionWord())},
		{Name: "HAS_NORMAL_MAP_BIT", Value: fmt.Sprintf("%du", FaceTextureHasNormalMapBit)},
		{Name: "OCCLUSION_BUFFER_WORDS", Value: fmt.Sprintf("%du", uint32(occlusion.WordCount))},
		{Name: "OCCLUSION_BUFFER_DIMENSIONS", Value: fmt.Sprintf("%du", uint32(occlusion.Dimensions))},
	}

	flag := func(on bool, name string) {
		if on {
			defs = append(defs, graphics.Define{Name: name, Value: "1"})
		}
	}
	flag(k.Has(KeyDepthPrepass), "DEPTH_PREPASS")
	flag(k.Has(KeyNormalPrepass), "NORMAL_PREPASS")
	flag(k.Has(KeyMotionVectorPrepass), "MOTION_VECTOR_PREPASS")
	flag(k.Has(KeyDeferred), "DEFERRED_OUTPUT")
	flag(k.Has(KeyDepthClampOrtho), "DEPTH_CLAMP_ORTHO")
	flag(k.Has(KeyVertexColors), "VERTEX_COLORS")
	flag(k.Has(KeyInstanceIndex), "INSTANCE_INDEX")
	flag(k.Prepass(), "PREPASS_PIPELINE")

	return defs
}

// Pipelines compiles and caches one shader program per structural
// variant, plus the command-builder compute program shared by all.
type Pipelines struct {
	shaderDir string
	cfg       VariantConfig
	cache     map[PipelineKey]*graphics.Shader
	compute   *graphics.Shader
}

// NewPipelines prepares a pipeline cache reading GLSL sources from
// shaderDir (assets/shaders/chunks in this repo's layout).
func NewPipelines(shaderDir string, cfg VariantConfig) *Pipelines {
	return &Pipelines{
		shaderDir: shaderDir,
		cfg:       cfg,
		cache:     map[PipelineKey]*graphics.Shader{},
	}
}

// Config returns the build-time variant configuration.
func (p *Pipelines) Config() VariantConfig {
	return p.cfg
}

// Specialize returns the compiled program for a variant key, compiling
// it on first use. Prepass keys use the prepass shader pair.
func (p *Pipelines) Specialize(key PipelineKey) (*graphics.Shader, error) {
	if s, ok := p.cache[key]; ok {
		return s, nil
	}

	vert, frag := "chunk.vert", "chunk.frag"
	if key.Prepass() {
		vert, frag = "chunk_prepass.vert", "chunk_prepass.frag"
	}

	s, err := graphics.NewShader(
		filepath.Join(p.shaderDir, vert),
		filepath.Join(p.shaderDir, frag),
		key.ShaderDefines(p.cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("specializing chunk pipeline %#x: %w", uint32(key), err)
	}
	p.cache[key] = s
	return s, nil
}

// CommandBuilder returns the compute program that builds instance data
// and indirect args on the device, compiling it on first use.
func (p *Pipelines) CommandBuilder() (*graphics.Shader, error) {
	if p.compute != nil {
		return p.compute, nil
	}
	s, err := graphics.NewComputeShader(
		filepath.Join(p.shaderDir, "build_commands.comp"),
		PipelineKey(0).ShaderDefines(p.cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling command builder: %w", err)
	}
	p.compute = s
	return s, nil
}

// Delete frees all compiled programs.
func (p *Pipelines) Delete() {
	for _, s := range p.cache {
		s.Delete()
	}
	p.cache = map[PipelineKey]*graphics.Shader{}
	if p.compute != nil {
		p.compute.Delete()
		p.compute = nil
	}
}
