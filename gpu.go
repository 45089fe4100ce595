// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package prism

import (
	"structs"

	"honnef.co/go/wgpu"

	"github.com/prism-gfx/prism/atlas"
	"github.com/prism-gfx/prism/vertex"
)

// FrameUniforms is the uniform block bound at group 0, binding 2. Field
// order matches the WGSL FrameUniforms declaration.
type FrameUniforms struct {
	_ structs.HostLayout

	TargetSize       [2]float32
	GlyphAtlasSize   [2]float32
	DevicePixelRatio float32
	_                float32
}

// Uniforms assembles the frame uniform block, querying the glyph atlas's
// current dimensions.
func (p FrameParams) Uniforms(glyphs *atlas.Atlas) FrameUniforms {
	w, h := glyphs.Size()
	return FrameUniforms{
		TargetSize:       [2]float32{float32(p.TargetWidth), float32(p.TargetHeight)},
		GlyphAtlasSize:   [2]float32{float32(w), float32(h)},
		DevicePixelRatio: p.DevicePixelRatio,
	}
}

// GPUPipelines is the device-side counterpart of Renderer: one render
// pipeline per primitive kind, each expanding instances into quads in its
// vertex stage. The record store binds as a read-only storage buffer; the
// instance stream likewise, indexed by instance id, so no vertex buffer
// layouts are involved.
type GPUPipelines struct {
	BindLayout *wgpu.BindGroupLayout
	Gradient   *wgpu.RenderPipeline
	TextRun    *wgpu.RenderPipeline
}

// wgslCommon is shared between the kind shaders: frame uniforms, the record
// store, the instance stream, and the quad corner and placement helpers
// mirroring the CPU resolvers.
const wgslCommon = `
	struct FrameUniforms {
		target_size: vec2<f32>,
		glyph_atlas_size: vec2<f32>,
		device_pixel_ratio: f32,
		_pad: f32,
	}

	struct Instance {
		prim_address: i32,
		specific_address: i32,
		task_index: i32,
		layer_index: i32,
		z: i32,
		clip_address: i32,
		user_data0: i32,
		user_data1: i32,
	}

	@group(0) @binding(0) var<storage, read> records: array<vec4<f32>>;
	@group(0) @binding(1) var<storage, read> instances: array<Instance>;
	@group(0) @binding(2) var<uniform> frame: FrameUniforms;
	@group(0) @binding(3) var<storage, read> task_origins: array<vec2<f32>>;
	@group(0) @binding(4) var<storage, read> layer_offsets: array<vec2<f32>>;

	fn quad_corner(ix: u32) -> vec2<f32> {
		switch ix {
			case 1u: { return vec2(1.0, 0.0); }
			case 2u: { return vec2(0.0, 1.0); }
			case 3u: { return vec2(1.0, 1.0); }
			default: { return vec2(0.0, 0.0); }
		}
	}

	fn rect_corner(origin: vec2<f32>, size: vec2<f32>, corner: vec2<f32>) -> vec2<f32> {
		return origin + size * corner;
	}

	fn place_device(local: vec2<f32>, task: i32, layer: i32) -> vec2<f32> {
		let world = local + layer_offsets[layer];
		return task_origins[task] + world * frame.device_pixel_ratio;
	}

	// Device pixels to clip space, y flipped so device y grows downward.
	fn to_clip(device: vec2<f32>) -> vec4<f32> {
		let ndc = device / frame.target_size * 2.0 - 1.0;
		return vec4(ndc.x, -ndc.y, 0.0, 1.0);
	}
`

// wgslGradient resolves one two-stop segment per instance, matching
// vertex.resolveSegment.
const wgslGradient = `
	struct GradientVertex {
		@builtin(position) position: vec4<f32>,
		@location(0) color: vec4<f32>,
	}

	@vertex
	fn vs_main(
		@builtin(vertex_index) vix: u32,
		@builtin(instance_index) iix: u32,
	) -> GradientVertex {
		let inst = instances[iix];
		let header0 = records[inst.prim_address];
		let local_origin = header0.xy;
		let local_size = header0.zw;

		let grad = records[inst.specific_address];
		let stop_base = inst.specific_address + 1 + 2 * inst.user_data0;
		let g0_color = records[stop_base];
		let g0_offset = records[stop_base + 1].x;
		let g1_color = records[stop_base + 2];
		let g1_offset = records[stop_base + 3].x;

		let start = grad.xy + local_origin;
		let end = grad.zw + local_origin;

		var axis = 1;
		if start.y == end.y {
			axis = 0;
		}
		var a0 = start.y;
		var a1 = end.y;
		var lo = local_origin.y;
		var hi = local_origin.y + local_size.y;
		if axis == 0 {
			a0 = start.x;
			a1 = end.x;
			lo = local_origin.x;
			hi = local_origin.x + local_size.x;
		}

		let p0 = mix(a0, a1, g0_offset);
		let p1 = mix(a0, a1, g1_offset);
		let denom = p1 - p0;

		var c0 = g0_color;
		var c1 = g1_color;
		var pc0 = p0;
		var pc1 = p0;
		if abs(denom) >= 1e-6 {
			pc0 = clamp(p0, lo, hi);
			pc1 = clamp(p1, lo, hi);
			if pc0 != p0 {
				c0 = mix(g0_color, g1_color, (pc0 - p0) / denom);
			}
			if pc1 != p1 {
				c1 = mix(g0_color, g1_color, (pc1 - p0) / denom);
			}
		} else {
			c1 = g0_color;
		}

		// Signed extent, so fraction 0 stays on pc0/c0 for reversed
		// gradients.
		var seg_origin = local_origin;
		var seg_size = local_size;
		if axis == 0 {
			seg_origin.x = pc0;
			seg_size.x = pc1 - pc0;
		} else {
			seg_origin.y = pc0;
			seg_size.y = pc1 - pc0;
		}

		let corner = quad_corner(vix);
		let local = rect_corner(seg_origin, seg_size, corner);
		let device = place_device(local, inst.task_index, inst.layer_index);

		var t = corner.y;
		if axis == 0 {
			t = corner.x;
		}

		var out: GradientVertex;
		out.position = to_clip(device);
		out.color = mix(c0, c1, t);
		return out;
	}

	@fragment
	fn fs_main(in: GradientVertex) -> @location(0) vec4<f32> {
		return in.color;
	}
`

// wgslTextRun resolves one glyph quad per instance, matching
// vertex.resolveTextRun.
const wgslTextRun = `
	@group(1) @binding(0) var glyph_atlas: texture_2d<f32>;

	struct TextVertex {
		@builtin(position) position: vec4<f32>,
		@location(0) color: vec4<f32>,
		@location(1) uv: vec2<f32>,
	}

	@vertex
	fn vs_main(
		@builtin(vertex_index) vix: u32,
		@builtin(instance_index) iix: u32,
	) -> TextVertex {
		let inst = instances[iix];
		let run0 = records[inst.specific_address];
		let run1 = records[inst.specific_address + 1];
		let glyph = records[inst.specific_address + 2 + inst.user_data0];
		let res_base = inst.user_data1 + 2 * inst.user_data0;
		let res_uv = records[res_base];
		let res_offset = records[res_base + 1].xy;

		let dpr = frame.device_pixel_ratio;
		let raster_offset = vec2(res_offset.x, -res_offset.y) / dpr;
		let origin = run1.xy + glyph.xy + raster_offset;
		let size = res_uv.zw / dpr;

		let corner = quad_corner(vix);
		let local = rect_corner(origin, size, corner);
		let device = place_device(local, inst.task_index, inst.layer_index);

		var out: TextVertex;
		out.position = to_clip(device);
		out.color = run0;
		out.uv = rect_corner(res_uv.xy, res_uv.zw, corner) / frame.glyph_atlas_size;
		return out;
	}

	@fragment
	fn fs_main(in: TextVertex) -> @location(0) vec4<f32> {
		let coverage = textureLoad(glyph_atlas, vec2<i32>(in.uv * frame.glyph_atlas_size), 0).r;
		return in.color * coverage;
	}
`

func NewGPUPipelines(dev *wgpu.Device, format wgpu.TextureFormat) *GPUPipelines {
	bindLayout := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: &wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeReadOnlyStorage,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: &wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeReadOnlyStorage,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: &wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: &wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeReadOnlyStorage,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
			{
				Binding:    4,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: &wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeReadOnlyStorage,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
		},
	})
	atlasLayout := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: &wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
		},
	})

	makePipeline := func(label string, src string, layouts []*wgpu.BindGroupLayout) *wgpu.RenderPipeline {
		shader := dev.CreateShaderModule(wgpu.ShaderModuleDescriptor{
			Label:  label + " shaders",
			Source: wgpu.ShaderSourceWGSL(wgslCommon + src),
		})
		pipelineLayout := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label:            label + " pipeline layout",
			BindGroupLayouts: layouts,
		})
		return dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  label + " pipeline",
			Layout: pipelineLayout,
			Vertex: &wgpu.VertexState{
				Module:     shader,
				EntryPoint: "vs_main",
			},
			Fragment: &wgpu.FragmentState{
				Module:     shader,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{
						Format:    format,
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: &wgpu.PrimitiveState{
				Topology:         wgpu.PrimitiveTopologyTriangleStrip,
				StripIndexFormat: ^wgpu.IndexFormat(0), // XXX 0 or Undefined?
				FrontFace:        wgpu.FrontFaceCCW,
				CullMode:         wgpu.CullModeNone,
			},
			Multisample: &wgpu.MultisampleState{
				Count:                  1,
				Mask:                   ^uint32(0),
				AlphaToCoverageEnabled: false,
			},
		})
	}

	return &GPUPipelines{
		BindLayout: bindLayout,
		Gradient:   makePipeline("gradient", wgslGradient, []*wgpu.BindGroupLayout{bindLayout}),
		TextRun:    makePipeline("text run", wgslTextRun, []*wgpu.BindGroupLayout{bindLayout, atlasLayout}),
	}
}

// KindOf maps a primitive kind to its GPU pipeline.
func (p *GPUPipelines) KindOf(kind vertex.Kind) *wgpu.RenderPipeline {
	if kind == vertex.KindGradient {
		return p.Gradient
	}
	return p.TextRun
}
