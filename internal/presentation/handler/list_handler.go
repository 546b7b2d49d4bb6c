package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"assetpipe/internal/application/usecase/abstraction"
	"assetpipe/pkg/logger"
)

type ListHandler struct {
	lister  abstraction.Lister
	folders abstraction.Folders
}

func NewListHandler(lister abstraction.Lister, folders abstraction.Folders) *ListHandler {
	return &ListHandler{
		lister:  lister,
		folders: folders,
	}
}

// HandleList handles GET /assets?folder=&q= requests.
func (h *ListHandler) HandleList(c echo.Context) error {
	assets, err := h.lister.ListAssets(c.Request().Context(), c.QueryParam("folder"), c.QueryParam("q"))
	if err != nil {
		logger.Error("listing assets failed", "error", err)

		return failWith(c, err, nil)
	}

	return c.JSON(http.StatusOK, assets)
}

// HandleFolders handles GET /folders requests.
func (h *ListHandler) HandleFolders(c echo.Context) error {
	folders, err := h.folders.ListFolders(c.Request().Context())
	if err != nil {
		logger.Error("listing folders failed", "error", err)

		return failWith(c, err, nil)
	}

	return c.JSON(http.StatusOK, folders)
}
