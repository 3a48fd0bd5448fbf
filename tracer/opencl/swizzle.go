package opencl

// The kernel writes BGRA texels (the layout GPU swapchains favor); the host
// contract is RGBA. The conversion is explicit at the backend boundary so the
// channel order is a named, tested contract instead of an accident.
func swizzleBGRAToRGBA(dst, src []uint8) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i]
		dst[i+3] = src[i+3]
	}
}
