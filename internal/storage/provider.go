// Package storage defines the vault file-system abstraction.
package storage

// Provider is the interface for vault file operations. All paths are
// relative to the vault root. The pipeline only ever creates files; no
// delete or rename operation exists.
type Provider interface {
	// List returns the names of files directly in dir (non-recursive)
	// whose name ends with ext, in directory enumeration order.
	List(dir, ext string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent
	// directories as needed.
	Write(path string, content []byte) error
	// CopyIn streams the external file at absolute path src into the
	// vault at dest, with the same atomicity as Write.
	CopyIn(src, dest string) error
	// Exists reports whether a file exists at path.
	Exists(path string) (bool, error)
	// Root returns the absolute vault root directory.
	Root() string
}
