package sprites

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale returns img magnified by an integer factor with nearest-neighbour
// sampling. Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if img == nil || factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
