package api

import (
	"context"
	"net/http"

	"wepub/logutil"
	"wepub/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PublishRunner executes a validated publish request against the platform.
type PublishRunner interface {
	Run(ctx context.Context, requestID string, req types.PublishRequest) (*types.PublishResult, error)
}

// RegisterPublishRoutes registers the publish endpoint.
func RegisterPublishRoutes(r *gin.Engine, runner PublishRunner) {
	ctl := &publishController{runner: runner}
	r.POST("/publish", ctl.handlePublish)
}

type publishController struct {
	runner PublishRunner
}

// handlePublish validates the payload, runs the workflow synchronously and
// returns the aggregate result. Validation failures are 400; any workflow
// failure is 500 with the cause text.
func (ctl *publishController) handlePublish(c *gin.Context) {
	var req types.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := uuid.New().String()
	logutil.Infof("[%s] publish request accepted: title=%q content_images=%d", requestID, req.Title, len(req.ContentImageURLs))

	// The orchestration runs to completion even if the caller disconnects
	// mid-request; each upstream call carries its own timeout.
	result, err := ctl.runner.Run(context.WithoutCancel(c.Request.Context()), requestID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.PublishResponse{
		Status:          "success",
		DraftMediaID:    result.DraftMediaID,
		CoverMediaID:    result.CoverMediaID,
		ContentMediaIDs: result.ContentMediaIDs,
		PublishID:       result.PublishID,
	})
}
