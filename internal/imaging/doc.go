// Package imaging loads source images and renders inscribed-rectangle
// results back onto them.
//
// It covers the I/O side of the pipeline around the region package:
// decoding files into a shared Cache, drawing the winning rectangle (and
// optionally the region mask and sampler grid) over a copy of the source,
// cropping the inscribed area, and encoding results as base64 PNG for MCP
// responses or saving them to disk.
//
// # Coordinate System
//
// All coordinates are 0-based relative to the image bounds origin, which is
// also how segment produces masks:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - region.Rect corners are both inside the region; an outline is drawn
//     centered on them and a crop spans [X1,X2) x [Y1,Y2)
//
// # Thread Safety
//
// Cache is safe for concurrent use. Rendering functions never modify their
// input image and can run concurrently on the same cached image.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O and decode failures
//   - Crop regions outside the image or with x1 >= x2 or y1 >= y2
//   - Color strings that are not "#RRGGBB" or "#RGB"
//   - Encoding failures
package imaging
