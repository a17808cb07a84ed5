package ihex

import (
	"bytes"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// FromFile parses the Intel HEX file at path. The file is memory mapped for
// the duration of the parse, so arbitrarily large images never need a full
// in-memory copy of the text.
func FromFile(path string) (*RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapError(IOFailure, err, "opening input file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, wrapError(IOFailure, err, "reading input file size")
	}
	if info.Size() == 0 {
		return nil, newError(NoInput, 0, "input file is empty")
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, wrapError(IOFailure, err, "mapping input file")
	}
	defer m.Unmap()

	return FromReader(bytes.NewReader(m))
}
