package ports

import "github.com/kitsnotes/hollywood/internal/core/domain"

// ConfigLoader defines the interface for loading scripts and tool settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadScript reads the raw script text from path.
	LoadScript(path string) ([]byte, error)

	// LoadSettings reads the settings file. An empty path searches the
	// environment variable and system locations; finding nothing there is
	// not an error and yields nil settings.
	LoadSettings(path string) (*domain.Settings, error)
}
