// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging decodes uploaded images and produces scaled-down JPEG
// thumbnails for the admin media library. WebP input is supported on
// top of the standard formats; output is always JPEG because the pure-Go
// toolchain has no WebP encoder.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// ThumbWidth is the target width for media library thumbnails.
	ThumbWidth = 320

	// thumbQuality is the JPEG quality for thumbnails.
	thumbQuality = 75
)

// Decode parses image bytes in any supported format (JPEG, PNG, GIF,
// WebP) and returns the decoded image plus the detected format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode: %w", err)
	}
	return img, format, nil
}

// Thumbnail produces a JPEG thumbnail at most maxWidth pixels wide,
// preserving aspect ratio. Images already narrower than maxWidth are
// re-encoded without scaling, never upscaled.
func Thumbnail(data []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = ThumbWidth
	}

	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imaging: empty image")
	}

	if width > maxWidth {
		targetHeight := height * maxWidth / width
		if targetHeight < 1 {
			targetHeight = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, targetHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
