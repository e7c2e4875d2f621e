package pipeline

import (
	"errors"

	"sheet-sync/core/logger"
	"sheet-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleRun)
	group.Get("/last", h.HandleLast)
	group.Get("/schema", h.HandleSchema)
}

// HandleRun triggers a synchronization and waits for it to finish.
// Query parameter dry_run=true reconciles without writing.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := c.QueryBool("dry_run", false)
	l.Info("Triggering sync run", zap.Bool("dry_run", dryRun))

	summary, err := h.service.Run(c.Context(), dryRun)
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Sync run failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, reconcile.ErrConnectivity) {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":  runStatus(summary),
		"summary": summary,
	})
}

// HandleLast returns the summary of the last completed run.
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	summary := h.service.Last()
	if summary == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no run has completed yet"})
	}
	return c.JSON(fiber.Map{
		"status":  runStatus(summary),
		"summary": summary,
	})
}

func runStatus(summary *reconcile.RunSummary) string {
	if summary.Failed() {
		return "partial"
	}
	return "ok"
}

// HandleSchema reports whether every table of the load order exists with the
// identifier and soft-delete columns.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Destination schema does not match", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}
