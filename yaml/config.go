// Package yaml loads catalog configuration from YAML files.
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/dalil-app/dalil"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the file at path. A missing file is not
// an error: defaults apply. Returns EINVALID when the file exists but
// cannot be parsed.
func Load(path string) (dalil.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return dalil.Config{}.Normalize(), nil
	}
	if err != nil {
		return dalil.Config{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes configuration from r and applies defaults.
func Parse(r io.Reader) (dalil.Config, error) {
	var config dalil.Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return dalil.Config{}, dalil.Errorf(dalil.EINVALID, "failed to parse config: %v", err)
	}
	return config.Normalize(), nil
}
