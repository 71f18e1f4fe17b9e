package http

import (
	"context"

	"github.com/gin-gonic/gin"

	pkgLog "intent-routing-engine/pkg/log"
)

// Handler is the interface for the policy admin HTTP handler.
type Handler interface {
	HandleReload(c *gin.Context)
	HandleValidate(c *gin.Context)
}

// Reloader is the slice of the policy store the admin surface needs.
type Reloader interface {
	Reload(ctx context.Context, data []byte) (string, error)
	LoadFile(ctx context.Context, path string) (string, error)
	Version() string
}

type handler struct {
	l     pkgLog.Logger
	store Reloader
}

// New creates a new policy admin HTTP handler.
func New(l pkgLog.Logger, store Reloader) Handler {
	return &handler{l: l, store: store}
}
