// Package config loads HorizonScript files and the hscript.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/kitsnotes/hollywood/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader on the local filesystem.
type Loader struct {
	systemPath string
}

// Option configures a Loader.
type Option func(*Loader)

// WithSystemPath replaces the system-wide settings location.
func WithSystemPath(p string) Option {
	return func(l *Loader) {
		l.systemPath = p
	}
}

// NewLoader creates a new Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{systemPath: domain.DefaultSettingsPath()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadScript reads the raw script text from path. A path of "-" reads stdin.
func (l *Loader) LoadScript(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is provided by user
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrScriptReadFailed, err), ""), "path", path)
	}
	return data, nil
}

// LoadSettings reads the settings file.
//
// The path is chosen from the argument, then $HSCRIPT_CONFIG, then
// /etc/horizon/hscript.yaml. Only a missing system-wide file is tolerated.
func (l *Loader) LoadSettings(path string) (*domain.Settings, error) {
	optional := false
	if path == "" {
		path = os.Getenv(domain.SettingsEnvVar)
	}
	if path == "" {
		path = l.systemPath
		optional = true
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil, nil //nolint:nilnil // absent settings are not an error
		}
		return nil, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrSettingsReadFailed, err), ""), "path", path)
	}

	return decodeSettings(path, data)
}

func decodeSettings(path string, data []byte) (*domain.Settings, error) {
	var s domain.Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, zerr.With(zerr.Wrap(fmt.Errorf("%w: %w", domain.ErrSettingsParseFailed, err), ""), "path", path)
	}
	return &s, nil
}
