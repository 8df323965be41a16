package numeric

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Capabilities describes the hardware half-precision support this process
// was launched on. It is purely informational: the session reports it on
// the diagnostic trace line and nothing else consults it. Conversion and
// kernel math always run the portable path in this file's sibling
// functions, so reporting it wrong would never change a result, only the
// trace text — this is the invariant spec section 9 calls out under
// "Global state".
type Capabilities struct {
	Arch       string
	HasF16C    bool // hardware float32<->fp16 conversion (e.g. x86 F16C/AVX512FP16)
	HasAVXBF16 bool // hardware bf16 dot-product support (e.g. AVX512BF16)
	HasARMFP16 bool // ARMv8.2 FP16 arithmetic extension
}

// Detect probes the running CPU via golang.org/x/sys/cpu and returns a
// Capabilities snapshot. Safe to call more than once; the underlying
// x/sys/cpu feature tables are computed once at process start.
func Detect() Capabilities {
	c := Capabilities{Arch: runtime.GOARCH}
	switch runtime.GOARCH {
	case "amd64":
		c.HasF16C = cpu.X86.HasAVX || cpu.X86.HasAVX2
		c.HasAVXBF16 = cpu.X86.HasAVX512BF16
	case "arm64":
		c.HasARMFP16 = cpu.ARM64.HasFPHP || cpu.ARM64.HasASIMDHP
		c.HasAVXBF16 = cpu.ARM64.HasBF16
	}
	return c
}

// String renders a short diagnostic line "<arch>/<tier>", e.g.
// "amd64/avx-f16c" or "arm64/scalar".
func (c Capabilities) String() string {
	tier := "scalar"
	switch {
	case c.Arch == "amd64" && c.HasAVXBF16:
		tier = "avx512-bf16"
	case c.Arch == "amd64" && c.HasF16C:
		tier = "avx-f16c"
	case c.Arch == "arm64" && c.HasARMFP16:
		tier = "neon-fp16"
	}
	return c.Arch + "/" + tier
}
