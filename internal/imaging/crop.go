package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
)

// CropRect extracts the area of rect from img and optionally rescales it.
//
// rect is in 0-based coordinates relative to img.Bounds().Min. The crop spans
// [X1,X2) x [Y1,Y2), so its size is rect.Width() x rect.Height() before
// scaling. A scale of 0 or 1 keeps the size.
func CropRect(img image.Image, rect region.Rect, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if rect.X1 >= rect.X2 || rect.Y1 >= rect.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if rect.X1 < 0 || rect.Y1 < 0 || rect.X2 > w || rect.Y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image size %dx%d",
			rect.X1, rect.Y1, rect.X2, rect.Y2, w, h)
	}
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}

	cropped := imaging.Crop(img, rect.Image().Add(bounds.Min))

	if scale != 0 && scale != 1.0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, nil
}
