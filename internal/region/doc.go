// Package region finds the largest axis-aligned rectangle inscribed in a
// binary region.
//
// A Region is a containment predicate over integer grid coordinates plus the
// bounding box where the predicate may be true. Mask is the grid-backed
// implementation produced by the segment package.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left, X increasing rightward
// and Y increasing downward. Region bounds follow image.Rectangle: Min is
// inclusive and Max is exclusive. Rect corners are both sample points that were
// tested inside the region, so a Rect drawn from (X1,Y1) to (X2,Y2) covers the
// validated boundary.
//
// # Search
//
// The search is a discretized heuristic with a single accuracy knob, the grid
// step:
//
//  1. Sampling: the region bounds are walked in strides of step and interior
//     points are collected. Their min/max form the sampled extent that bounds
//     all later search. The extent can be smaller than the true bounds when
//     the border of the region falls between grid lines.
//
//  2. Anchors: top-left corners are drawn from the extent in strides of
//     2*step and must be interior.
//
//  3. Right edge: for each anchor, x2 is scanned from the right end of the
//     extent toward the anchor in strides of 2*step. The top-right corner and
//     every point of the top edge at step resolution must be interior.
//
//  4. Bottom edge: for each valid top edge, y2 is scanned from the bottom of
//     the extent upward in strides of 2*step. Both bottom corners, both sides
//     and the bottom edge are checked at step resolution. The first y2 that
//     passes ends the scan for that top edge.
//
// A rectangle replaces the best one only when its area is strictly larger,
// so ties go to the first rectangle in iteration order (x1 ascending, y1
// ascending, x2 descending, y2 descending). The result is locally optimal per
// anchor and is not a global optimum.
//
// # Cost
//
// Sampling grows quadratically as step shrinks and the search grows roughly
// with the fourth power of extent/step. Options.MaxChecks and context
// deadlines bound the work; when a budget runs out the best rectangle so far is
// returned with Result.Truncated set rather than an error.
//
// # Not Found
//
// An empty sampled extent (StatusEmptyRegion) and a region with no valid
// rectangle (StatusNoValidRectangle) are ordinary results with a nil Rect.
package region
