package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"assetpipe/internal/application/usecase/abstraction"
	"assetpipe/internal/domain/entity"
	"assetpipe/pkg/logger"
)

const filesField = "files"

type UploadHandler struct {
	ingester abstraction.Ingester
}

func NewUploadHandler(ingester abstraction.Ingester) *UploadHandler {
	return &UploadHandler{
		ingester: ingester,
	}
}

// HandleUpload handles POST /assets multipart requests. Form fields: files (repeated),
// folder, filter_folder, optimize (default true) and images_only.
func (h *UploadHandler) HandleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "invalid multipart form")
	}

	optimize, err := boolField(c.FormValue("optimize"), true)
	if err != nil {
		return badRequest(c, "invalid optimize flag")
	}

	imagesOnly, err := boolField(c.FormValue("images_only"), false)
	if err != nil {
		return badRequest(c, "invalid images_only flag")
	}

	files, err := readFiles(form.File[filesField])
	if err != nil {
		logger.Warn("reading upload failed", "error", err)

		return badRequest(c, "unreadable file")
	}

	result, err := h.ingester.Ingest(c.Request().Context(), entity.IngestRequest{
		Files:        files,
		Folder:       c.FormValue("folder"),
		FilterFolder: c.FormValue("filter_folder"),
		Optimize:     optimize,
		ImagesOnly:   imagesOnly,
	})
	if err != nil {
		logger.Error("ingest failed", "error", err, "succeeded", result.Succeeded)

		return failWith(c, err, partialIngest(result))
	}

	if result.Succeeded == 0 && result.Failed > 0 {
		return c.JSON(http.StatusUnprocessableEntity, result)
	}

	return c.JSON(http.StatusOK, result)
}

func partialIngest(result entity.IngestResult) any {
	if result.Succeeded == 0 && result.Failed == 0 {
		return nil
	}

	return result
}

func readFiles(headers []*multipart.FileHeader) ([]entity.FileInput, error) {
	files := make([]entity.FileInput, 0, len(headers))
	for _, fh := range headers {
		content, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, entity.FileInput{Name: fh.Filename, Content: content})
	}

	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func boolField(value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseBool(value)
}
