package gfx_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/hubastard/hellogl/engine/gfx"
	"github.com/hubastard/hellogl/engine/gfx/gfxtest"
)

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// bmpV4 builds a bottom-up 32bpp bitmap with a BITMAPV4HEADER, which keeps its alpha
// channel when decoded. bgra holds one pixel per 4 bytes, bottom row first.
func bmpV4(w, h int, bgra []byte) []byte {
	const headers = 14 + 108
	b := make([]byte, headers, headers+len(bgra))
	le := binary.LittleEndian
	copy(b, "BM")
	le.PutUint32(b[2:], uint32(headers+len(bgra)))
	le.PutUint32(b[10:], headers)
	le.PutUint32(b[14:], 108)
	le.PutUint32(b[18:], uint32(w))
	le.PutUint32(b[22:], uint32(h))
	le.PutUint16(b[26:], 1)
	le.PutUint16(b[28:], 32)
	le.PutUint32(b[34:], uint32(len(bgra)))
	return append(b, bgra...)
}

func TestLoadTexture_Red2x2(t *testing.T) {
	dev := gfxtest.NewDevice()
	fsys := fstest.MapFS{"red.bmp": {Data: encodeBMP(t, solid(2, 2, color.RGBA{255, 0, 0, 255}))}}

	tex, err := gfx.LoadTexture(dev, fsys, "red.bmp")
	require.NoError(t, err)
	require.NotZero(t, tex)

	got := dev.Texture(tex)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 2, got.Height)
	require.Len(t, got.Pixels, 12)
	for i := 0; i < 12; i += 3 {
		assert.Equal(t, []byte{255, 0, 0}, got.Pixels[i:i+3], "pixel %d", i/3)
	}

	assert.Equal(t, map[gfx.TexParam]int32{
		gfx.TextureMinFilter: gfx.Linear,
		gfx.TextureMagFilter: gfx.Linear,
		gfx.TextureWrapS:     gfx.ClampToEdge,
		gfx.TextureWrapT:     gfx.ClampToEdge,
	}, got.Params)
	assert.NoError(t, dev.Error())
}

func TestLoadTexture_RowOrder(t *testing.T) {
	img := solid(3, 2, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})
	img.SetRGBA(2, 1, color.RGBA{7, 8, 9, 255})

	dev := gfxtest.NewDevice()
	fsys := fstest.MapFS{"odd.bmp": {Data: encodeBMP(t, img)}}
	tex, err := gfx.LoadTexture(dev, fsys, "odd.bmp")
	require.NoError(t, err)

	px := dev.Texture(tex).Pixels
	require.Len(t, px, 3*2*3) // rows are 9 bytes, no padding
	assert.Equal(t, []byte{1, 2, 3}, px[0:3], "first byte is the top-left pixel")
	assert.Equal(t, []byte{7, 8, 9}, px[15:18])
}

func TestLoadTexture_AlphaDropped(t *testing.T) {
	dev := gfxtest.NewDevice()
	fsys := fstest.MapFS{"half.bmp": {Data: bmpV4(2, 1, []byte{
		0, 0, 255, 128, // red, half transparent
		255, 0, 0, 0, // blue, fully transparent
	})}}

	tex, err := gfx.LoadTexture(dev, fsys, "half.bmp")
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 0, 0, 255}, dev.Texture(tex).Pixels)
}

func TestLoadTexture_Failures(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		file string
		want error
	}{
		{"missing", fstest.MapFS{}, "nope.bmp", gfx.ErrAssetLoad},
		{"not a bitmap", fstest.MapFS{"junk.bmp": {Data: []byte("GIF89a not a bmp")}}, "junk.bmp", gfx.ErrAssetLoad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gfxtest.NewDevice()
			_, err := gfx.LoadTexture(dev, tt.fsys, tt.file)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.file)
			assert.Zero(t, dev.Live())
		})
	}
}

func TestLoadTexture_Exhausted(t *testing.T) {
	dev := gfxtest.NewDevice()
	dev.Exhaust["texture"] = true
	fsys := fstest.MapFS{"red.bmp": {Data: encodeBMP(t, solid(1, 1, color.RGBA{255, 0, 0, 255}))}}

	_, err := gfx.LoadTexture(dev, fsys, "red.bmp")
	require.ErrorIs(t, err, gfx.ErrResourceCreation)
	assert.Contains(t, err.Error(), "red.bmp")
}

func TestToRGB24(t *testing.T) {
	t.Run("gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 1))
		img.SetGray(1, 0, color.Gray{Y: 200})
		rgb, err := gfx.ToRGB24(img)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 200, 200, 200}, rgb.Pix)
	})

	t.Run("sub image", func(t *testing.T) {
		img := solid(4, 4, color.RGBA{0, 0, 255, 255})
		img.SetRGBA(2, 2, color.RGBA{0, 255, 0, 255})
		sub := img.SubImage(image.Rect(2, 2, 4, 4))
		rgb, err := gfx.ToRGB24(sub)
		require.NoError(t, err)
		assert.Equal(t, 2, rgb.Width)
		assert.Equal(t, []byte{0, 255, 0}, rgb.Pix[:3])
		assert.Equal(t, []byte{0, 0, 255}, rgb.Pix[3:6])
	})

	t.Run("straight alpha", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 128})
		rgb, err := gfx.ToRGB24(img)
		require.NoError(t, err)
		assert.Equal(t, []byte{255, 0, 0}, rgb.Pix)
	})

	t.Run("premultiplied alpha", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, color.RGBA{128, 64, 0, 128})
		rgb, err := gfx.ToRGB24(img)
		require.NoError(t, err)
		assert.Equal(t, []byte{255, 127, 0}, rgb.Pix)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := gfx.ToRGB24(image.NewRGBA(image.Rect(0, 0, 0, 3)))
		require.ErrorIs(t, err, gfx.ErrFormatConversion)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := gfx.ToRGB24(image.NewUniform(color.White))
		require.ErrorIs(t, err, gfx.ErrFormatConversion)
	})
}
