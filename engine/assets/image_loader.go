package assets

import (
	"fmt"
	"image"
	"io/fs"

	"golang.org/x/image/bmp"
)

// DecodeBitmap opens name and decodes it as a Windows BMP.
func DecodeBitmap(fsys fs.FS, name string) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %q: %w", name, err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode bitmap %q: %w", name, err)
	}
	return img, nil
}
