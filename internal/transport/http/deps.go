package http

import (
	"log/slog"

	"github.com/go-ulidgen/internal/application/generator"
)

// Deps holds the collaborators of the router.
type Deps struct {
	Generator generator.Service
	Logger    *slog.Logger
}
