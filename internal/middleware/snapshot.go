package middleware

import (
	"github.com/gofiber/fiber/v3"

	"launchdash/internal/controller"
)

const snapshotKey = "snapshot"

// SnapshotMiddleware pins the current dashboard snapshot to the request so
// every handler in the chain sees one consistent selection.
type SnapshotMiddleware struct {
	ctrl *controller.Controller
}

// NewSnapshotMiddleware creates a new snapshot middleware instance.
func NewSnapshotMiddleware(ctrl *controller.Controller) *SnapshotMiddleware {
	return &SnapshotMiddleware{ctrl: ctrl}
}

// Load stores the current snapshot in the request locals.
func (m *SnapshotMiddleware) Load(c fiber.Ctx) error {
	c.Locals(snapshotKey, m.ctrl.Current())
	return c.Next()
}

// Snapshot returns the snapshot loaded for this request. The second result is
// false if Load did not run.
func Snapshot(c fiber.Ctx) (controller.Snapshot, bool) {
	snap, ok := c.Locals(snapshotKey).(controller.Snapshot)
	return snap, ok
}
