// Package segment turns an image into a binary region mask.
//
// Segmentation runs in four stages:
//
//  1. Optional Gaussian blur to suppress noise (BlurRadius > 0).
//  2. Pixel classification by Mode:
//     - dark: luminance <= Threshold is inside (an inverted binary threshold)
//     - light: luminance > Threshold is inside
//     - color: CIE L*a*b* distance to KeyColor <= Tolerance is inside
//  3. Selection of the largest 8-connected component, which stands for the
//     dominant shape of the image.
//  4. Hole filling, so the mask covers everything enclosed by the outer
//     border of that shape.
//
// Stages 3 and 4 are skipped with KeepAll. The resulting mask is always
// 0-based, even when the source image bounds do not start at the origin.
//
// Fully transparent pixels are never inside.
package segment
