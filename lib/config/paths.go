package config

import (
	"path/filepath"

	yaml "github.com/goccy/go-yaml"
)

// CfgPath is a file path that is resolved against the directory of the
// config file it was read from.
type CfgPath string

// unmarshalBase is set by Parse before decoding
var unmarshalBase string

func (c *CfgPath) UnmarshalYAML(b []byte) error {
	var path string

	err := yaml.Unmarshal(b, &path)
	if err != nil {
		return err
	}

	if path == "" || filepath.IsAbs(path) {
		*c = CfgPath(path)
	} else {
		*c = CfgPath(filepath.Join(unmarshalBase, path))
	}
	return nil
}
