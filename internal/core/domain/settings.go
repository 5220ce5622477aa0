package domain

import (
	"path/filepath"
	"strings"
)

// ColorMode selects when diagnostics and progress output use ANSI colour.
type ColorMode string

const (
	// ColorAuto colours output only on a terminal without NO_COLOR set.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces colour.
	ColorAlways ColorMode = "always"
	// ColorNever disables colour.
	ColorNever ColorMode = "never"
)

// Settings is the content of the optional settings file.
// Pointer fields distinguish "unset" from a zero value.
type Settings struct {
	Strict               *bool     `yaml:"strict"`
	KeepGoing            *bool     `yaml:"keep_going"`
	Workers              *int      `yaml:"workers"`
	Target               string    `yaml:"target"`
	Arch                 string    `yaml:"arch"`
	PkgInstallDuplicates string    `yaml:"pkginstall_duplicates"`
	Repositories         []string  `yaml:"repositories"`
	SigningKeys          []string  `yaml:"signing_keys"`
	Color                ColorMode `yaml:"color"`
	LogJSON              bool      `yaml:"log_json"`
}

// Apply overlays the settings onto o. Unset fields leave o untouched.
func (s *Settings) Apply(o Options) (Options, error) {
	if s == nil {
		return o, nil
	}
	if s.Strict != nil {
		o.Strict = *s.Strict
	}
	if s.KeepGoing != nil {
		o.KeepGoing = *s.KeepGoing
	}
	if s.Workers != nil {
		if *s.Workers < 1 {
			return o, Tag(ErrInvalidSetting, "workers", *s.Workers)
		}
		o.Workers = *s.Workers
	}
	if s.Target != "" {
		if !filepath.IsAbs(s.Target) {
			return o, Tag(ErrInvalidSetting, "target", s.Target)
		}
		o.TargetRoot = filepath.Clean(s.Target)
	}
	if s.Arch != "" {
		o.Arch = s.Arch
	}
	if s.PkgInstallDuplicates != "" {
		scope, ok := ParseDupScope(s.PkgInstallDuplicates)
		if !ok {
			return o, Tag(ErrInvalidSetting, "pkginstall_duplicates", s.PkgInstallDuplicates)
		}
		o.PkgDupScope = scope
	}
	if len(s.Repositories) > 0 {
		o.Repositories = s.Repositories
	}
	if len(s.SigningKeys) > 0 {
		o.SigningKeys = s.SigningKeys
	}
	switch s.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return o, Tag(ErrInvalidSetting, "color", string(s.Color))
	}
	return o, nil
}

// PlanFormat is an encoding of a plan.
type PlanFormat string

const (
	// PlanFormatScript is the #!/bin/sh rendering used for simulation.
	PlanFormatScript PlanFormat = "script"
	// PlanFormatYAML is a readable structured encoding.
	PlanFormatYAML PlanFormat = "yaml"
	// PlanFormatCBOR is a compact binary encoding for handing plans to a runner.
	PlanFormatCBOR PlanFormat = "cbor"
)

// ParsePlanFormat validates a format name.
func ParsePlanFormat(s string) (PlanFormat, error) {
	switch f := PlanFormat(strings.ToLower(s)); f {
	case PlanFormatScript, PlanFormatYAML, PlanFormatCBOR:
		return f, nil
	case "":
		return PlanFormatScript, nil
	}
	return "", Tag(ErrUnknownPlanFormat, "format", s)
}

// PlanFormatFromPath guesses the encoding of a plan file from its extension.
func PlanFormatFromPath(p string) PlanFormat {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".cbor":
		return PlanFormatCBOR
	case ".yaml", ".yml":
		return PlanFormatYAML
	}
	return PlanFormatScript
}
