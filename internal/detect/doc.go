// Package detect classifies the indentation style of a source file.
//
// Classification is a pure pipeline over the file's lines:
//
//	Preprocess -> Tally -> Score -> Select
//
// Preprocess strips C-style block comments and drops lines that carry no
// indentation signal. Tally counts each distinct leading-whitespace run. Score
// adds those counts to every style whose pattern accepts the run. Select keeps
// the styles within a relative threshold of the best score and picks the first
// one in a fixed preference order.
//
// An undetermined outcome is an ordinary Result with Found set to false.
// Every call allocates its own state, so a Policy may be shared between
// goroutines.
package detect
