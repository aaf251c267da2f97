package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/models"
)

// formUploads opens every file sent under field. Non-multipart requests carry no files.
// The returned close func must be called once the uploads have been consumed.
func formUploads(c echo.Context, field string) ([]models.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form").SetInternal(err)
	}

	headers := form.File[field]
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]models.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file").SetInternal(err)
		}
		files = append(files, f)
		uploads = append(uploads, models.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			File:        f,
		})
	}
	return uploads, closeAll, nil
}

// formUpload opens the single file sent under field, or returns nil if there is none.
func formUpload(c echo.Context, field string) (*models.Upload, func(), error) {
	uploads, closeAll, err := formUploads(c, field)
	if err != nil {
		return nil, nil, err
	}
	if len(uploads) == 0 {
		return nil, closeAll, nil
	}
	return &uploads[0], closeAll, nil
}
