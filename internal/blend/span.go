package blend

// Span composites src over dst for n pixels.
//
// Both slices hold premultiplied RGBA8 pixels and must be at least 4*n bytes
// long. Fully transparent source pixels are skipped.
func Span(dst, src []byte, n int) {
	for i := 0; i < n*4; i += 4 {
		sa := src[i+3]
		if sa == 0 {
			continue
		}
		dst[i+0], dst[i+1], dst[i+2], dst[i+3] = Over(
			src[i+0], src[i+1], src[i+2], sa,
			dst[i+0], dst[i+1], dst[i+2], dst[i+3],
		)
	}
}
