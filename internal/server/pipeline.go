package server

import (
	"context"
	"image"
	"time"

	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
	"github.com/ironsheep/inscribed-rect-mcp/internal/segment"
)

// Analysis is the outcome of segmenting an image and searching the mask.
type Analysis struct {
	Segmentation *segment.Result
	Samples      *region.Samples
	Search       *region.Result
}

// Analyze segments img and searches the resulting mask for the largest
// inscribed rectangle. A positive timeout starts before segmentation and
// covers the whole call. Segmentation always runs to completion, so only the
// search can be cut short; hitting the timeout yields a truncated result,
// not an error.
func Analyze(ctx context.Context, img image.Image, segOpts segment.Options, opts region.Options, timeout time.Duration) (*Analysis, error) {
	if opts.Step <= 0 {
		return nil, region.ErrInvalidStep
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	seg, err := segment.Segment(img, segOpts)
	if err != nil {
		return nil, err
	}

	samples := region.Sample(seg.Mask, opts.Step)
	res, err := region.FindInSamples(ctx, seg.Mask, samples, opts)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Segmentation: seg,
		Samples:      samples,
		Search:       res,
	}, nil
}
