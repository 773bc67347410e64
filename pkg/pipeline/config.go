package pipeline

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/starfield/pkg/errors"
)

// LoadOptions reads a TOML config file on top of [DefaultOptions].
// Keys absent from the file keep their defaults; unknown keys are an error.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if errors.GetCode(err) != "" {
			return Options{}, err
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidParameter, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidParameter,
			"unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// WriteOptions encodes opts as TOML. The output can be read back with
// [LoadOptions].
func WriteOptions(w io.Writer, opts Options) error {
	if err := toml.NewEncoder(w).Encode(opts); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode config")
	}
	return nil
}
