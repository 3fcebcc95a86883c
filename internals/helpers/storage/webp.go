package storage

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

/* =======================================================================
   WebP options (env driven)
======================================================================= */

type WebPOptions struct {
	MaxW        int // resize bound, aspect kept
	MaxH        int
	TargetKB    int     // 0 = single pass with Quality
	Quality     float32 // default / initial guess
	MinQ        float32 // binary search bounds
	MaxQ        float32
	ToleranceKB int
	Lossless    bool
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:        envInt("IMAGE_WEBP_MAX_W", 1920),
		MaxH:        envInt("IMAGE_WEBP_MAX_H", 1920),
		TargetKB:    envInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:     envFloat("IMAGE_WEBP_QUALITY", 82),
		MinQ:        envFloat("IMAGE_WEBP_MIN_Q", 45),
		MaxQ:        envFloat("IMAGE_WEBP_MAX_Q", 90),
		ToleranceKB: envInt("IMAGE_WEBP_TOLERANCE_KB", 8),
	}
}

/* =======================================================================
   Decode (jpeg/png/gif via imaging with EXIF orientation, webp via chai2010)
======================================================================= */

var ErrUnsupportedImage = fmt.Errorf("unsupported image format")

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.Contains(ct, "webp") || ext == ".webp":
		return webp.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"), strings.Contains(ct, "gif"):
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	}
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	}
	return nil, ErrUnsupportedImage
}

/* =======================================================================
   Resize (keep aspect, CatmullRom)
======================================================================= */

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

/* =======================================================================
   Encode
   TargetKB > 0: binary search quality until size <= target+tolerance
======================================================================= */

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Lossless: opt.Lossless, Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	if opt.Lossless || opt.TargetKB <= 0 {
		return encodeQ(q)
	}

	limit := (opt.TargetKB + opt.ToleranceKB) * 1024
	lo, hi := opt.MinQ, opt.MaxQ
	if lo <= 0 {
		lo = 40
	}
	if hi <= lo {
		hi = 90
	}

	var best []byte
	for i := 0; i < 7 && hi-lo > 1; i++ {
		mid := (lo + hi) / 2
		out, err := encodeQ(mid)
		if err != nil {
			return nil, err
		}
		if len(out) <= limit {
			best = out
			lo = mid
		} else {
			hi = mid
		}
	}
	if best != nil {
		return best, nil
	}
	return encodeQ(lo)
}

// ConvertToWebP decodes, bounds and re-encodes an uploaded picture.
func ConvertToWebP(all []byte, filename string, opt WebPOptions) ([]byte, error) {
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	return encodeToWebP(img, opt)
}
