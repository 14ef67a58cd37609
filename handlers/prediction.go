package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"phishguard-api/models"
	"phishguard-api/services"

	"github.com/gin-gonic/gin"
)

// NoPrediction is the probability shown before anything was submitted.
const NoPrediction = -1.0

// Classifier runs the prediction pipeline.
type Classifier interface {
	ClassifyAndRecord(ctx context.Context, url string) (*services.PredictionResult, error)
}

// PredictionLister reads stored predictions.
type PredictionLister interface {
	ListAll(ctx context.Context) ([]models.Prediction, error)
	ListPage(ctx context.Context, afterID uint, limit int) ([]models.Prediction, error)
}

type PredictionHandler struct {
	pipeline Classifier
	store    PredictionLister
}

func NewPredictionHandler(pipeline Classifier, store PredictionLister) *PredictionHandler {
	return &PredictionHandler{pipeline: pipeline, store: store}
}

// ShowForm renders the empty result page.
func (h *PredictionHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "result.html", gin.H{
		"title":       "Result",
		"probability": NoPrediction,
	})
}

// Submit classifies the form field url and renders the verdict.
func (h *PredictionHandler) Submit(c *gin.Context) {
	url := c.PostForm("url")

	res, err := h.pipeline.ClassifyAndRecord(c.Request.Context(), url)
	if err != nil {
		log.Printf("prediction failed for url=%q kind=%s: %v", url, services.ErrorKind(err), err)
	}

	data := gin.H{
		"title":       "Result",
		"probability": NoPrediction,
		"url":         url,
	}
	if res != nil {
		data["probability"] = res.Probability
		data["prediction"] = res.Verdict
		if res.LegitimateSuggestion != nil {
			data["legitimate_suggestion"] = *res.LegitimateSuggestion
		}
	}

	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		data["error"] = userMessage(err)
	}
	c.HTML(status, "result.html", data)
}

// AllPredictions renders stored predictions: all of them unless limit or
// after_id ask for a page.
func (h *PredictionHandler) AllPredictions(c *gin.Context) {
	p, paged := ParsePagination(c)

	var (
		rows []models.Prediction
		next string
		err  error
	)
	if paged {
		var hasMore bool
		rows, hasMore, err = h.page(c.Request.Context(), p)
		if hasMore && len(rows) > 0 {
			next = strconv.FormatUint(uint64(rows[len(rows)-1].ID), 10)
		}
	} else {
		rows, err = h.store.ListAll(c.Request.Context())
	}
	if err != nil {
		log.Printf("list predictions failed: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Error",
			"error": "Could not load predictions.",
		})
		return
	}

	c.HTML(http.StatusOK, "all_predictions.html", gin.H{
		"title":       "All predictions",
		"predictions": rows,
		"limit":       p.Limit,
		"next_cursor": next,
	})
}

func (h *PredictionHandler) page(ctx context.Context, p PaginationParams) ([]models.Prediction, bool, error) {
	rows, err := h.store.ListPage(ctx, p.AfterID, p.Limit+1)
	if err != nil {
		return nil, false, err
	}
	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}
	return rows, hasMore, nil
}

type CreatePredictionRequest struct {
	URL string `json:"url" binding:"required"`
}

// Create is the JSON counterpart of Submit.
func (h *PredictionHandler) Create(c *gin.Context) {
	var req CreatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	res, err := h.pipeline.ClassifyAndRecord(c.Request.Context(), req.URL)
	if err != nil {
		kind := services.ErrorKind(err)
		log.Printf("prediction failed for url=%q kind=%s: %v", req.URL, kind, err)

		body := gin.H{"error": userMessage(err), "kind": kind}
		var auditErr *services.AuditWriteError
		if errors.As(err, &auditErr) && res != nil {
			body["prediction"] = res
		}
		c.JSON(statusFor(err), body)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// List returns one cursor page of stored predictions.
func (h *PredictionHandler) List(c *gin.Context) {
	p, _ := ParsePagination(c)

	rows, hasMore, err := h.page(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = strconv.FormatUint(uint64(rows[len(rows)-1].ID), 10)
	}

	c.JSON(http.StatusOK, CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore})
}
