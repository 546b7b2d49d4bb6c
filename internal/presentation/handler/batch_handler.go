package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"assetpipe/internal/application/usecase/abstraction"
	"assetpipe/internal/domain/dto"
	"assetpipe/internal/domain/entity"
	"assetpipe/pkg/logger"
)

type BatchHandler struct {
	optimizer abstraction.Optimizer
	mover     abstraction.Mover
	deleter   abstraction.Deleter
}

func NewBatchHandler(optimizer abstraction.Optimizer, mover abstraction.Mover,
	deleter abstraction.Deleter,
) *BatchHandler {
	return &BatchHandler{
		optimizer: optimizer,
		mover:     mover,
		deleter:   deleter,
	}
}

// HandleOptimize handles POST /assets/optimize requests.
func (h *BatchHandler) HandleOptimize(c echo.Context) error {
	req, err := bindBatch(c)
	if err != nil {
		return badRequest(c, "invalid batch request")
	}

	rep, err := h.optimizer.BulkOptimize(c.Request().Context(), req.IDs, logProgress("optimize"))
	if err != nil {
		logger.Error("bulk optimize failed", "error", err, "batch_id", rep.BatchID)

		return failWith(c, err, partialBatch(rep.BatchReport, rep))
	}

	return c.JSON(http.StatusOK, rep)
}

// HandleMove handles POST /assets/move requests.
func (h *BatchHandler) HandleMove(c echo.Context) error {
	req, err := bindBatch(c)
	if err != nil {
		return badRequest(c, "invalid batch request")
	}

	rep, err := h.mover.BulkMove(c.Request().Context(), req.IDs, req.Folder, logProgress("move"))
	if err != nil {
		logger.Error("bulk move failed", "error", err, "batch_id", rep.BatchID)

		return failWith(c, err, partialBatch(rep, rep))
	}

	return c.JSON(http.StatusOK, rep)
}

// HandleDelete handles POST /assets/delete requests.
func (h *BatchHandler) HandleDelete(c echo.Context) error {
	req, err := bindBatch(c)
	if err != nil {
		return badRequest(c, "invalid batch request")
	}

	rep, err := h.deleter.BulkDelete(c.Request().Context(), req.IDs, logProgress("delete"))
	if err != nil {
		logger.Error("bulk delete failed", "error", err, "batch_id", rep.BatchID)

		return failWith(c, err, partialBatch(rep, rep))
	}

	return c.JSON(http.StatusOK, rep)
}

func bindBatch(c echo.Context) (dto.BatchRequest, error) {
	var req dto.BatchRequest
	if err := c.Bind(&req); err != nil {
		return dto.BatchRequest{}, err
	}

	return req, nil
}

func partialBatch(rep entity.BatchReport, body any) any {
	if rep.Total == 0 {
		return nil
	}

	return body
}

func logProgress(operation string) entity.ProgressFunc {
	return func(processed, total, percent int) {
		logger.Debug("batch progress", "operation", operation, "processed", processed,
			"total", total, "percent", percent)
	}
}
