// Package style holds the fixed catalogue of indentation conventions the
// classifier can recognize, together with the editor settings each one maps to.
//
// The catalogue is immutable. Recognition patterns deliberately overlap
// (every spaces-8 run is also a spaces-4 and spaces-2 run, a tab-only run
// satisfies every emacs variant); the detect package resolves that overlap
// with a preference order rather than here.
package style
