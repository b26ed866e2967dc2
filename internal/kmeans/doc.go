// Package kmeans implements Lloyd's k-means over feature matrices.
//
// Used by spatial clustering to derive reference centers from smoothed
// feature data before scoring every point against them.
package kmeans
