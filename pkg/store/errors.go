package store

import (
	"errors"
	"fmt"
	"io/fs"
)

// LoadErrorKind classifies a failed load.
type LoadErrorKind int

const (
	// LoadFile means the file could not be opened or read.
	LoadFile LoadErrorKind = iota
	// LoadFormat means the contents could not be decoded.
	LoadFormat
)

func (k LoadErrorKind) String() string {
	if k == LoadFormat {
		return "format"
	}
	return "file"
}

// LoadError wraps the cause of a failed load.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SaveErrorKind classifies a failed save.
type SaveErrorKind int

const (
	// SaveFile means the file or its directory could not be created.
	SaveFile SaveErrorKind = iota
	// SaveFormat means the state could not be encoded.
	SaveFormat
	// SaveWrite means writing the encoded state failed.
	SaveWrite
)

func (k SaveErrorKind) String() string {
	switch k {
	case SaveFormat:
		return "format"
	case SaveWrite:
		return "write"
	default:
		return "file"
	}
}

// SaveError wraps the cause of a failed save.
type SaveError struct {
	Kind SaveErrorKind
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether err is a load that failed only because nothing
// has been saved yet.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
