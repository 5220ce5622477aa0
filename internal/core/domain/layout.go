package domain

import (
	"path"
	"path/filepath"
)

const (
	// MaxLineLength is the longest raw script line the lexer accepts, in bytes.
	MaxLineLength = 512

	// ScriptFileName is the name diagnostics use to refer to the script.
	ScriptFileName = "installfile"

	// SettingsFileName is the name of the optional settings file.
	SettingsFileName = "hscript.yaml"

	// SettingsDirName is the system directory holding the settings file.
	SettingsDirName = "/etc/horizon"

	// SettingsEnvVar names the environment variable that overrides the settings path.
	SettingsEnvVar = "HSCRIPT_CONFIG"

	// HeredocMarker terminates here-documents in rendered plans.
	HeredocMarker = "HSCRIPT_EOF"

	// PrintOwnerCommand is the helper invoked by rendered plans to resolve file owners.
	PrintOwnerCommand = "hscript-printowner"

	// DirPerm is the default permission for directories created on the target (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultSettingsPath returns the system-wide settings path.
// It joins /etc/horizon and hscript.yaml.
func DefaultSettingsPath() string {
	return filepath.Join(SettingsDirName, SettingsFileName)
}

// TargetPath joins a target root and an absolute path on the target system.
func TargetPath(root, p string) string {
	return path.Join(root, p)
}
