package models

import (
	"io"
	"os"
)

var _ MediaFile = &os.File{}

// A MediaFile is an opened audio file. MediaFile is implemented by *os.File.
type MediaFile interface {
	Stat() (os.FileInfo, error)
	io.ReadSeekCloser
}
