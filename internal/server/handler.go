package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/revisit/internal/learning"
)

type handler struct {
	service ItemService
	logger  *slog.Logger
}

// ItemListResponse is a page of learning items.
type ItemListResponse struct {
	Items []learning.Item `json:"items"`
	Total int             `json:"total"`
}

// DueItemsResponse lists the items due for review with a per-subject summary.
type DueItemsResponse struct {
	Items     []learning.Item `json:"items"`
	TotalDue  int             `json:"total_due"`
	BySubject map[string]int  `json:"by_subject"`
}

type listParams struct {
	Subject string `form:"subject"`
	Skip    *int   `form:"skip" binding:"omitnil,min=0"`
	Limit   *int   `form:"limit" binding:"omitnil,min=1,max=500"`
}

type dueParams struct {
	Subject    string `form:"subject"`
	TargetDate string `form:"target_date"`
}

type historyParams struct {
	Limit *int `form:"limit" binding:"omitnil,min=1,max=200"`
}

func (h *handler) createItem(c *gin.Context) {
	var input learning.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, fmt.Sprintf("invalid request body: %v", err), nil)
		return
	}

	item, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handler) listItems(c *gin.Context) {
	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, "invalid query parameters", bindingViolations(err))
		return
	}

	query := learning.ListQuery{Subject: params.Subject, Limit: learning.DefaultListLimit}
	if params.Skip != nil {
		query.Skip = *params.Skip
	}
	if params.Limit != nil {
		query.Limit = *params.Limit
	}

	items, total, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ItemListResponse{Items: nonNil(items), Total: total})
}

func (h *handler) listSubjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(subjects))
}

func (h *handler) getItem(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) updateItem(c *gin.Context) {
	var input learning.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, fmt.Sprintf("invalid request body: %v", err), nil)
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) deleteItem(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) dueItems(c *gin.Context) {
	var params dueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, "invalid query parameters", bindingViolations(err))
		return
	}

	var targetDate civil.Date
	if params.TargetDate != "" {
		var err error
		targetDate, err = civil.ParseDate(params.TargetDate)
		if err != nil {
			respondValidationError(c, "invalid query parameters", []learning.FieldViolation{{
				Field:   "target_date",
				Message: "target_date must be a date in YYYY-MM-DD format",
			}})
			return
		}
	}

	ctx := c.Request.Context()
	items, err := h.service.Due(ctx, learning.DueQuery{Subject: params.Subject, Date: targetDate})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	bySubject, err := h.service.DueCountBySubject(ctx, targetDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if bySubject == nil {
		bySubject = map[string]int{}
	}

	c.JSON(http.StatusOK, DueItemsResponse{
		Items:     nonNil(items),
		TotalDue:  len(items),
		BySubject: bySubject,
	})
}

func (h *handler) markReviewed(c *gin.Context) {
	_, review, err := h.service.MarkReviewed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *handler) manualReview(c *gin.Context) {
	_, review, err := h.service.ManualReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *handler) history(c *gin.Context) {
	var params historyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidationError(c, "invalid query parameters", bindingViolations(err))
		return
	}
	limit := learning.DefaultHistoryLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	reviews, err := h.service.History(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(reviews))
}

func (h *handler) stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// nonNil makes empty results encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
