package gfx

import (
	"image"
	"image/draw"
	"io/fs"

	"github.com/hubastard/hellogl/engine/assets"
	"github.com/hubastard/hellogl/engine/logging"
)

// MaxTextureSize bounds either dimension accepted by ToRGB24.
const MaxTextureSize = 16384

// RGBImage is tightly packed 24-bit RGB, row-major, first row = top of the image.
type RGBImage struct {
	Width, Height int
	Pix           []byte // len == Width*Height*3
}

// ToRGB24 repacks any decoded image into RGBImage. Alpha is discarded.
func ToRGB24(img image.Image) (*RGBImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errorf(KindFormatConversion, "image", nil, "empty image %dx%d", w, h)
	}
	if w > MaxTextureSize || h > MaxTextureSize {
		return nil, errorf(KindFormatConversion, "image", nil, "%dx%d exceeds %d", w, h, MaxTextureSize)
	}

	// Straight alpha, so dropping A leaves the colour channels unscaled.
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	out := &RGBImage{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		src := nrgba.Pix[nrgba.PixOffset(nrgba.Rect.Min.X, nrgba.Rect.Min.Y+y):]
		dst := out.Pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			dst[x*3+0] = src[x*4+0]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return out, nil
}

// UploadTexture creates a 2D texture with linear filtering and edge clamping and uploads
// img as level 0. The texture is left bound to the active unit.
func UploadTexture(dev Device, name string, img *RGBImage) (TextureHandle, error) {
	tex := dev.GenTexture()
	if tex == 0 {
		return 0, errorf(KindResourceCreation, name, dev.Error(), "couldn't create texture")
	}
	dev.BindTexture(tex)
	dev.TexParameter(TextureMinFilter, Linear)
	dev.TexParameter(TextureMagFilter, Linear)
	dev.TexParameter(TextureWrapS, ClampToEdge)
	dev.TexParameter(TextureWrapT, ClampToEdge)
	dev.TexImageRGB(img.Width, img.Height, img.Pix)
	logging.Logger().Debug("uploaded texture", "name", name, "handle", tex, "width", img.Width, "height", img.Height)
	return tex, nil
}

// LoadTexture decodes the bitmap name from fsys, converts it to RGB24 and uploads it.
func LoadTexture(dev Device, fsys fs.FS, name string) (TextureHandle, error) {
	img, err := assets.DecodeBitmap(fsys, name)
	if err != nil {
		return 0, errorf(KindAssetLoad, name, err, "couldn't load")
	}
	rgb, err := ToRGB24(img)
	if err != nil {
		return 0, errorf(KindFormatConversion, name, err, "couldn't convert to RGB")
	}
	return UploadTexture(dev, name, rgb)
}
