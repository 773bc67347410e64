package io

import (
	"os"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

// ImportSVG reads and parses the document at path.
//
// A missing file is reported as FILE_NOT_FOUND, other read failures as
// IO_ERROR, and malformed markup as INVALID_MARKUP.
func ImportSVG(path string) (*svg.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	return svg.Decode(f)
}
