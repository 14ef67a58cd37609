package handlers

import (
	"errors"
	"log"
	"net/http"

	"phishguard-api/services"

	"github.com/gin-gonic/gin"
)

// DatasetFormField is the multipart field the upload form posts.
const DatasetFormField = "datasetfile"

type PreviewHandler struct {
	defaultDataset string
}

func NewPreviewHandler(defaultDataset string) *PreviewHandler {
	return &PreviewHandler{defaultDataset: defaultDataset}
}

// ShowDefault previews the bundled dataset.
func (h *PreviewHandler) ShowDefault(c *gin.Context) {
	ds, err := services.LoadDataset(h.defaultDataset)
	if err != nil {
		log.Printf("load default dataset %s failed: %v", h.defaultDataset, err)
		h.render(c, http.StatusInternalServerError, nil, "The default dataset is not available.")
		return
	}
	h.render(c, http.StatusOK, ds, "")
}

// Upload previews a posted CSV file.
func (h *PreviewHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile(DatasetFormField)
	if err != nil {
		h.render(c, http.StatusBadRequest, nil, "Choose a CSV file to upload.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.render(c, http.StatusBadRequest, nil, "The uploaded file could not be read.")
		return
	}
	defer f.Close()

	ds, err := services.ParseDataset(f)
	if err != nil {
		msg := "The uploaded file is not a valid CSV dataset."
		if errors.Is(err, services.ErrNoIDColumn) {
			msg = `The dataset must have an "Id" column.`
		}
		h.render(c, http.StatusBadRequest, nil, msg)
		return
	}
	h.render(c, http.StatusOK, ds, "")
}

func (h *PreviewHandler) render(c *gin.Context, status int, ds *services.Dataset, msg string) {
	data := gin.H{"title": "Preview"}
	if ds != nil {
		data["dataset"] = ds
	}
	if msg != "" {
		data["error"] = msg
	}
	c.HTML(status, "preview.html", data)
}
