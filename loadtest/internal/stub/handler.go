package stub

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type Handler struct {
	storage *FeedStorage
}

func NewHandler(storage *FeedStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := req.Records
	if req.Generated != nil {
		if req.Generated.ProviderCount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provider_count must not be negative"})
			return
		}
		records = append(records, Generate(runID, *req.Generated)...)
	}

	h.storage.AddRecords(runID, records)

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("record_count", len(records)),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":       "seeded",
		"run_id":       runID,
		"record_count": len(records),
	})
}

// GET /providers?run_id=...
// Returns the flat availability array the booking service consumes.
func (h *Handler) HandleGetProviders(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	records, status := h.storage.Records(runID)
	if status != 0 {
		slog.Debug("forced feed failure",
			slog.String("run_id", runID),
			slog.Int("status", status),
		)
		c.Status(status)
		return
	}

	slog.Debug("get providers",
		slog.String("run_id", runID),
		slog.Int("count", len(records)),
	)

	respBytes, err := json.Marshal(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to marshal response"})
		return
	}

	c.Data(http.StatusOK, "application/json", respBytes)
}

// POST /failure?run_id=...
func (h *Handler) HandleSetFailure(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req FailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StatusCode != 0 && (req.StatusCode < 400 || req.StatusCode > 599) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status_code must be 0 or an error status"})
		return
	}

	h.storage.SetFailure(runID, req.StatusCode)

	slog.Debug("update failure",
		slog.String("run_id", runID),
		slog.Int("status_code", req.StatusCode),
	)

	c.Status(http.StatusNoContent)
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/reset", h.HandleReset)
	r.POST("/seed", h.HandleSeed)
	r.POST("/failure", h.HandleSetFailure)
	r.GET("/providers", h.HandleGetProviders)
}
