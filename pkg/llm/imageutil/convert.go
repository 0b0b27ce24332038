package imageutil

import (
	"bytes"
	"image"
	"image/jpeg"

	_ "image/gif" // Register GIF decoder
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const jpegQuality = 85

// allowedMediaTypes is the upload allow-list.
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// NormalizeMediaType maps a declared media type onto the allow-list,
// defaulting to image/jpeg for missing or unrecognized values.
func NormalizeMediaType(declared string) string {
	if allowedMediaTypes[declared] {
		return declared
	}
	return "image/jpeg"
}

// PrepareUpload downscales an uploaded image to fit within maxEdge on its
// longer side and re-encodes it as JPEG. Images that already fit, and
// payloads that fail to decode, are passed through unchanged together with
// their declared media type — the generation provider gets to make the
// final call on unreadable input.
func PrepareUpload(data []byte, mediaType string, maxEdge int) (out []byte, outType string) {
	if maxEdge <= 0 {
		return data, mediaType
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mediaType
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return data, mediaType
	}

	scaled := scaleToFit(src, maxEdge)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data, mediaType
	}

	return buf.Bytes(), "image/jpeg"
}

// scaleToFit scales the image so its longer side equals maxEdge,
// preserving aspect ratio. No upscaling.
func scaleToFit(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var newW, newH int
	if w >= h {
		newW = maxEdge
		newH = h * maxEdge / w
	} else {
		newH = maxEdge
		newW = w * maxEdge / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
