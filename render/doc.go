// Package render draws one value per 2-D point as a colored cell, for
// inspecting smoothed channels, scores and cluster labels.
//
// Output is SVG or PNG via github.com/tdewolff/canvas.
package render
