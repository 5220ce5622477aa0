package domain

import "go.trai.ch/zerr"

var (
	// ErrLineTooLong is returned by the lexer when a raw line exceeds MaxLineLength.
	ErrLineTooLong = zerr.New("line exceeds maximum length")

	// ErrScriptReadFailed is returned when the script file cannot be read.
	ErrScriptReadFailed = zerr.New("failed to read script")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrInvalidSetting is returned when a settings value is out of range.
	ErrInvalidSetting = zerr.New("invalid setting")

	// ErrParseFailed is returned when the parser reported at least one error.
	ErrParseFailed = zerr.New("script could not be parsed")

	// ErrValidationFailed is returned when the validator reported at least one error.
	ErrValidationFailed = zerr.New("script failed validation")

	// ErrEmission is returned when the emitter meets an entry it cannot translate.
	// Reaching it with a validator-clean document is a defect.
	ErrEmission = zerr.New("internal error while emitting plan")

	// ErrStepAlreadyExists is returned when a physical step is added to a graph twice.
	ErrStepAlreadyExists = zerr.New("step already exists")

	// ErrMissingDependency is returned when a step depends on a step that is not in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the physical dependency graph has a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrEntryNotFound is returned when an EntryRef does not resolve in a document.
	ErrEntryNotFound = zerr.New("entry not found")

	// ErrActionFailed is returned by a runner when an action could not be performed.
	ErrActionFailed = zerr.New("action failed")

	// ErrUnknownOperation is returned when an executor meets an operation it does not support.
	ErrUnknownOperation = zerr.New("unknown operation")

	// ErrPlanEncodeFailed is returned when a plan cannot be encoded.
	ErrPlanEncodeFailed = zerr.New("failed to encode plan")

	// ErrPlanDecodeFailed is returned when a plan cannot be decoded.
	ErrPlanDecodeFailed = zerr.New("failed to decode plan")

	// ErrUnknownPlanFormat is returned when a plan format name is not recognised.
	ErrUnknownPlanFormat = zerr.New("unknown plan format, expected 'script', 'yaml' or 'cbor'")

	// ErrOwnerLookupFailed is returned when the owner of a path cannot be determined.
	ErrOwnerLookupFailed = zerr.New("failed to look up owner")

	// ErrNotConfirmed is returned when a destructive run was requested without confirmation.
	ErrNotConfirmed = zerr.New("refusing to modify the system without --yes")
)

// Tag attaches metadata to a sentinel error. Unlike calling zerr.With on the
// sentinel directly, the result still matches the sentinel under errors.Is.
func Tag(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
