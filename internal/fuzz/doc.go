// Package fuzztests hosts fuzz targets for the line reader and the classifier.
// Run them with `go test -fuzz=FuzzClassify ./internal/fuzz`.
package fuzztests
