package httpserver

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHTTP struct {
	Dir string
}

func (h *UploadHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.upload")

	file, err := c.FormFile("image")
	if err != nil {
		l.Warn("upload_error", "status", 400, "reason", "missing image field", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "missing image field")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		l.Warn("upload_error", "status", 400, "reason", "unsupported file type", "ext", ext)
		return echo.NewHTTPError(http.StatusBadRequest, "images only")
	}

	src, err := file.Open()
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	l.Info("upload_success", "file", name)
	return c.JSON(http.StatusCreated, map[string]string{"image": "/uploads/" + name})
}
