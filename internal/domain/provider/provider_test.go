package provider

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcafacil/go_backend/internal/domain/apperr"
)

func dataURI(t *testing.T, w, h int, f imaging.Format, mime string) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, f))
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalize(t *testing.T) {
	info := Info{Name: " Acme ", Phone: "11999999999", Document: "12345678000190"}.Normalize()
	assert.Equal(t, "Acme", info.Name)
	assert.Equal(t, "(11) 99999-9999", info.Phone)
	assert.Equal(t, "12.345.678/0001-90", info.Document)
}

func TestValidate(t *testing.T) {
	assert.True(t, apperr.Is(Info{}.Validate(), apperr.KindValidation))
	assert.NoError(t, Default().Validate())
}

func TestNormalizeLogoScalesDown(t *testing.T) {
	out, err := NormalizeLogo(dataURI(t, 1024, 256, imaging.JPEG, "image/jpeg"))
	require.NoError(t, err)
	require.Contains(t, out, "data:image/png;base64,")

	img, err := DecodeLogo(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, MaxLogoSide, MaxLogoSide/4), img.Bounds())
}

func TestNormalizeLogoKeepsSmallImages(t *testing.T) {
	out, err := NormalizeLogo(dataURI(t, 64, 32, imaging.PNG, "image/png"))
	require.NoError(t, err)
	img, err := DecodeLogo(out)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestNormalizeLogoRejectsGarbage(t *testing.T) {
	_, err := NormalizeLogo("not a uri")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = NormalizeLogo("data:image/png;base64,aGVsbG8=")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	out, err := NormalizeLogo("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
