// Package imaging converts uploaded product images into embedded data URLs.
//
// The admin panel uploads a raw image file; we decode it, downscale anything
// wider than the product-card size, re-encode it, and hand back a
// "data:image/...;base64," string. That string is stored on the product like
// any other image value — the storefront needs no separate file hosting.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register the GIF decoder for image.Decode
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

// maxWidth caps the stored image width. Product cards render at 300px, so
// 800px leaves room for high-DPI screens without bloating the database.
const maxWidth = 800

// jpegQuality balances file size against visible artifacts.
const jpegQuality = 80

// DataURL decodes an uploaded image, downscales it if it is wider than
// maxWidth (preserving aspect ratio), and returns it re-encoded as a base64
// data URL.
//
// PNG input stays PNG (screenshots and logos keep sharp edges and
// transparency); everything else is re-encoded as JPEG. Returns an error for
// data that isn't a decodable PNG, JPEG, or GIF.
func DataURL(r io.Reader) (string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("imaging: decoding image: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		// Height 0 = keep aspect ratio. Lanczos3 is the slowest and
		// sharpest of the resize kernels; uploads are rare enough that
		// quality wins.
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var (
		buf  bytes.Buffer
		mime string
	)
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("imaging: encoding png: %w", err)
		}
		mime = "image/png"
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return "", fmt.Errorf("imaging: encoding jpeg: %w", err)
		}
		mime = "image/jpeg"
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
