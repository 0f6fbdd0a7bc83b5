package gpu

import (
	"encoding/binary"
	"math"

	sdr "github.com/Aemi-Studio/AemiSDR"
)

// maskKernelWGSL is the compute kernel evaluating the mask per pixel on the
// GPU. It mirrors the CPU reference math exactly: the rounded-rect and
// superellipse SDFs, the guarded exponentiation, and the plateau/fade
// transfer. Each invocation writes one f32 alpha into the storage buffer;
// quantization to 8-bit happens on readback.
const maskKernelWGSL = `
struct Params {
    width: u32,
    height: u32,
    kind: u32,
    eased: u32,
    offset_or_radius: f32,
    axis_or_fade: f32,
    exponent: f32,
    plateau: f32,
}

@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var<storage, read_write> output: array<f32>;

fn fast_pow(x: f32, n: f32) -> f32 {
    if (n == 0.0) { return 1.0; }
    if (x <= 0.0) { return 0.0; }
    if (n == 1.0) { return x; }
    if (n == 2.0) { return x * x; }
    let cn = clamp(n, 0.0, 100.0);
    let cx = clamp(x, 1e-6, 1e6);
    return pow(cx, cn);
}

fn rounded_rect_distance(p: vec2<f32>, half_size: vec2<f32>, radius: f32) -> f32 {
    let r = clamp(radius, 0.0, min(half_size.x, half_size.y));
    let d = abs(p) - (half_size - vec2<f32>(r, r));
    let outside = length(max(d, vec2<f32>(0.0, 0.0)));
    let inside = min(max(d.x, d.y), 0.0);
    return outside + inside - r;
}

fn superellipse_distance(p: vec2<f32>, half_size: vec2<f32>, radius: f32, n: f32) -> f32 {
    let r = clamp(radius, 0.0, min(half_size.x, half_size.y));
    let d = abs(p) - max(half_size - vec2<f32>(r, r), vec2<f32>(0.0, 0.0));
    if (d.x <= 0.0 && d.y <= 0.0) {
        return max(d.x, d.y) - r;
    }
    if (r <= 0.0) {
        return length(max(d, vec2<f32>(0.0, 0.0)));
    }
    let corner = max(d, vec2<f32>(0.0, 0.0)) / r;
    let s = fast_pow(max(corner.x, 1e-4), n) + fast_pow(max(corner.y, 1e-4), n);
    return r * (fast_pow(s, 1.0 / n) - 1.0);
}

fn hermite(t: f32) -> f32 {
    return t * t * (3.0 - 2.0 * t);
}

fn ramp_alpha(dist: f32, plateau: f32, fade: f32, eased: u32) -> f32 {
    if (plateau <= 0.0 && fade <= 0.0) {
        return select(0.0, 1.0, dist >= 0.0);
    }
    let shifted = dist + plateau;
    if (shifted >= 0.0) {
        return 1.0;
    }
    if (fade <= 0.0) {
        return 0.0;
    }
    let t = clamp(1.0 + shifted / fade, 0.0, 1.0);
    if (eased != 0u) {
        return hermite(t);
    }
    return t;
}

@compute @workgroup_size(8, 8)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= params.width || gid.y >= params.height) {
        return;
    }
    let w = f32(params.width);
    let h = f32(params.height);
    var alpha: f32;
    if (params.kind <= 2u) {
        var v = (f32(gid.y) + 0.5) / h;
        if (params.kind == 1u) {
            v = 1.0 - v;
        }
        let offset = params.offset_or_radius;
        let denom = 1.0 - offset;
        var t: f32;
        if (denom <= 0.0) {
            t = select(0.0, 1.0, v >= offset);
        } else {
            t = clamp((v - offset) / denom, 0.0, 1.0);
        }
        if (params.eased != 0u) {
            t = hermite(t);
        }
        alpha = 1.0 - t;
    } else {
        let half_size = vec2<f32>(w * 0.5, h * 0.5);
        let p = vec2<f32>(f32(gid.x) + 0.5, f32(gid.y) + 0.5) - half_size;
        var dist: f32;
        if (params.kind >= 5u) {
            dist = superellipse_distance(p, half_size, params.offset_or_radius, params.exponent);
        } else {
            dist = rounded_rect_distance(p, half_size, params.offset_or_radius);
        }
        alpha = ramp_alpha(dist, params.plateau, params.axis_or_fade, params.eased);
    }
    output[gid.y * params.width + gid.x] = alpha;
}
`

// KernelSource returns the WGSL source of the mask kernel, for hosts that
// compile and dispatch it themselves.
func KernelSource() string { return maskKernelWGSL }

// kernelParamsSize is the byte size of the kernel uniform buffer:
// four u32 fields followed by four f32 fields.
const kernelParamsSize = 32

// packKernelParams serializes the uniform parameter block for a mask
// configuration. The positional vector from Config.KernelParams supplies
// the shared fields; the plateau width rides in the trailing slot, scaled
// the same way the generator scales it.
func packKernelParams(cfg sdr.Config) []byte {
	kp := cfg.KernelParams()

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	plateau := cfg.Shape.PlateauWidth * scale
	if cfg.Kind.Linear() {
		plateau = 0
	}

	eased := uint32(0)
	if cfg.Kind.Eased() {
		eased = 1
	}

	buf := make([]byte, kernelParamsSize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(kp[0]))
	binary.LittleEndian.PutUint32(buf[4:], uint32(kp[1]))
	binary.LittleEndian.PutUint32(buf[8:], uint32(cfg.Kind))
	binary.LittleEndian.PutUint32(buf[12:], eased)
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(float32(kp[2])))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(float32(kp[3])))
	binary.LittleEndian.PutUint32(buf[24:], math.Float32bits(float32(kp[4])))
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(float32(plateau)))
	return buf
}

// unpackAlphas quantizes the f32 alpha readback to 8-bit mask values.
func unpackAlphas(readback []byte, pixelCount int) []uint8 {
	out := make([]uint8, pixelCount)
	for i := 0; i < pixelCount; i++ {
		bits := binary.LittleEndian.Uint32(readback[i*4:])
		a := float64(math.Float32frombits(bits))
		if a < 0 {
			a = 0
		} else if a > 1 {
			a = 1
		}
		out[i] = uint8(math.Round(a * 255))
	}
	return out
}
