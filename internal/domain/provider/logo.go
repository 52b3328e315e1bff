package provider

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"orcafacil/go_backend/internal/domain/apperr"
)

// MaxLogoSide bounds the stored logo; larger uploads are scaled down.
const MaxLogoSide = 512

// DecodeLogo decodes a "data:image/...;base64," URI.
func DecodeLogo(dataURI string) (image.Image, error) {
	header, payload, ok := strings.Cut(strings.TrimSpace(dataURI), ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, apperr.Validation("logo must be a base64 image data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "logo is not valid base64")
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "logo is not a supported image")
	}
	return img, nil
}

// LogoPNG decodes the logo and re-encodes it as PNG, scaled to MaxLogoSide.
func LogoPNG(dataURI string) ([]byte, error) {
	img, err := DecodeLogo(dataURI)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > MaxLogoSide || b.Dy() > MaxLogoSide {
		img = imaging.Fit(img, MaxLogoSide, MaxLogoSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "encode logo")
	}
	return buf.Bytes(), nil
}

// NormalizeLogo rewrites any accepted logo as a PNG data URI. Empty stays empty.
func NormalizeLogo(dataURI string) (string, error) {
	if strings.TrimSpace(dataURI) == "" {
		return "", nil
	}
	png, err := LogoPNG(dataURI)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
