// Package imageutil normalizes icon images to PNG. PNG, JPEG, GIF, WebP, BMP
// and TIFF inputs are accepted; oversized images are downscaled.
package imageutil
