package model

// Path represents a file system path.
type Path string

// File represents a source code file on disk.
type File struct {
	Path Path
	Hash string
}

// Source is a discovered candidate file for mutation testing.
type Source struct {
	Origin *File
}

// SwapRecord maps each original source path to its backup location inside
// the swap working directory. It is built once before a session starts and
// is read-only for the remainder of the session.
type SwapRecord map[Path]Path
