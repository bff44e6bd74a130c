package source

// FileID identifies a file inside a FileSet.
type FileID uint32

// FileFlags record normalization applied when a file was loaded.
type FileFlags uint8

const (
	// FileHadBOM marks files that carried a UTF-8 BOM before normalization.
	FileHadBOM FileFlags = 1 << iota
	// FileNormalizedCRLF marks files whose CRLF line endings were rewritten to LF.
	FileNormalizedCRLF
	// FileVirtual marks in-memory files (tests, generated sources).
	FileVirtual
)

// File holds the raw content of one source file plus derived metadata.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n', for LineCol resolution
	Flags   FileFlags
}

// LineCol is a 1-based line/column position.
type LineCol struct {
	Line uint32
	Col  uint32
}
