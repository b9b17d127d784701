package source

type (
	// FileID uniquely identifies a script within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a script was loaded.
	FileFlags uint8
)

const (
	// FileVirtual marks scripts added from memory (tests, stdin, editors).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks scripts that carried a byte-order mark on disk.
	FileHadBOM
	// FileNormalizedCRLF marks scripts whose CRLF endings were rewritten to LF.
	FileNormalizedCRLF
	// FileTranscodedUTF16 marks scripts converted from UTF-16 to UTF-8 on load.
	FileTranscodedUTF16
)

// File holds the content and metadata of a single loaded script.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n' в Content
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, both components 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}
