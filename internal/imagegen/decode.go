// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imagegen

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// sniff validates a payload as a decodable raster image and returns its
// format name and pixel dimensions without decoding the full bitmap.
func sniff(data []byte) (format string, size Size, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", Size{}, fmt.Errorf("imagegen: decode image: %w", err)
	}
	return format, Size{cfg.Width, cfg.Height}, nil
}

// MimeForFormat maps a decoded format name to its content type.
func MimeForFormat(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	}
	return "image/png"
}
