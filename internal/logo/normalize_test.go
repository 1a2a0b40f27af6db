package logo_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pactly/internal/logo"
)

func TestNormalize_DownscalesLargeJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 600, 300))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	out, err := logo.Normalize(buf.Bytes(), logo.MaxSide)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 256, w)
	assert.Equal(t, 128, h)
}

func TestNormalize_TallImageKeepsAspect(t *testing.T) {
	out, err := logo.Normalize(encodePNG(t, 100, 400), 200)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 50, w)
	assert.Equal(t, 200, h)
}

func TestNormalize_SmallGIFKeepsSize(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 32, 16), []color.Color{color.White, color.Black})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))

	out, err := logo.Normalize(buf.Bytes(), logo.MaxSide)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	_, err := logo.Normalize([]byte("<svg></svg>"), logo.MaxSide)
	assert.Error(t, err)
}

func TestNormalize_RejectsOversizedDimensions(t *testing.T) {
	// A tiny PNG whose header claims 12000x12000 pixels.
	raw := encodePNG(t, 1, 1)
	binary.BigEndian.PutUint32(raw[16:20], 12000)
	binary.BigEndian.PutUint32(raw[20:24], 12000)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))

	_, err := logo.Normalize(raw, logo.MaxSide)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12000x12000")
}

func TestNormalize_AcceptsLimitDimensions(t *testing.T) {
	out, err := logo.Normalize(encodePNG(t, logo.MaxSourceSide, 1), logo.MaxSide)
	require.NoError(t, err)

	w, h := decodeSize(t, out)
	assert.Equal(t, logo.MaxSide, w)
	assert.Equal(t, 1, h)
}
