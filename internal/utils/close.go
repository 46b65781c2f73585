package utils

import (
	"io"

	"github.com/MrSnakeDoc/navdir/internal/logger"
)

// Close closes c and ignores any error.
// Use on error paths where a close failure would only shadow the real error.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseLogged closes c and logs a failure at warn level under what.
func CloseLogged(c io.Closer, log logger.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", what), logger.Error(err))
	}
}
