// Package util holds the file plumbing commands share: yaml config and the log file.
package util

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig unmarshals the yaml at path into cfg. When nothing is at path and a sample
// is given, the sample is written there first and loaded; created reports that it was.
func LoadConfig(cfg any, path string, sample []byte, mode os.FileMode) (created bool, err error) {

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && sample != nil {
		err = os.WriteFile(path, sample, mode)
		if err != nil {
			err = errors.Wrapf(err, "failed to write sample config to %s", path)
			return
		}
		created, data = true, sample
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

// SaveConfig writes cfg to path as yaml. Whatever was at path is kept as path.bak.
func SaveConfig(cfg any, path string, mode os.FileMode) (err error) {

	data, err := yaml.Marshal(cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal config")
		return
	}

	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		err = os.WriteFile(path+".bak", prev, mode)
		if err != nil {
			err = errors.Wrapf(err, "failed to back up %s", path)
			return
		}
	case !errors.Is(err, fs.ErrNotExist):
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// OpenLog opens path for appending and returns it with its closer.
// An empty path, or one that cannot be opened, logs nowhere.
func OpenLog(path string, mode os.FileMode) (writer io.Writer, closer func()) {

	closer = func() {}
	if path == "" {
		return io.Discard, closer
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: not logging: %s\n", err.Error())
		return io.Discard, closer
	}

	return file, func() { file.Close() }
}
