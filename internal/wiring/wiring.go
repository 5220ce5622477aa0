// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/kitsnotes/hollywood/internal/adapters/config"
	_ "github.com/kitsnotes/hollywood/internal/adapters/fs"
	_ "github.com/kitsnotes/hollywood/internal/adapters/logger"
	_ "github.com/kitsnotes/hollywood/internal/adapters/plancodec"
	_ "github.com/kitsnotes/hollywood/internal/adapters/shell"
	// Register app nodes.
	_ "github.com/kitsnotes/hollywood/internal/app"
)
