// Package blend implements the Porter-Duff source-over operator used by
// palette layers.
//
// All operations work on premultiplied alpha bytes in the range 0-255, the
// same layout as image.RGBA. Division by 255 is exact so that compositing an
// opaque pixel over anything reproduces it bit for bit.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Over composites one premultiplied source pixel over a destination pixel.
// Formula: S + D * (1 - Sa)
func Over(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 255 {
		return sr, sg, sb, sa
	}
	invSa := inv255(sa)
	return clampAdd(sr, mulDiv255(dr, invSa)),
		clampAdd(sg, mulDiv255(dg, invSa)),
		clampAdd(sb, mulDiv255(db, invSa)),
		clampAdd(sa, mulDiv255(da, invSa))
}

// Premultiply converts a straight-alpha color to premultiplied bytes.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	if a == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, a), mulDiv255(g, a), mulDiv255(b, a), a
}

// Unpremultiply converts premultiplied bytes back to straight alpha.
// Fully transparent pixels come back as transparent black.
func Unpremultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	switch a {
	case 0:
		return 0, 0, 0, 0
	case 255:
		return r, g, b, a
	}
	return unmul(r, a), unmul(g, a), unmul(b, a), a
}

func unmul(c, a byte) byte {
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}
