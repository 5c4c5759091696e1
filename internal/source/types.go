package source

// FileFlags encodes how a file's text was normalized while loading.
type FileFlags uint8

const (
	// FileVirtual indicates the text did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileTruncated indicates lines past the configured cap were not read.
	FileTruncated
)

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool { return f&flag == flag }

// File is the line view of one input handed to the classifier.
type File struct {
	Path  string
	Lines []string
	Flags FileFlags
}

// DefaultMaxLines bounds how much of a file is read for detection.
const DefaultMaxLines = 1000
