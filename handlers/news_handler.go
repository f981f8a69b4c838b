package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"comic-news/helper"
	"comic-news/models"
	"comic-news/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService     services.NewsService
	pipelineService services.PipelineService
	Helper          *helper.HTTPHelper
}

func NewNewsHandler(newsService services.NewsService, pipelineService services.PipelineService, h *helper.HTTPHelper) *NewsHandler {
	return &NewsHandler{
		newsService:     newsService,
		pipelineService: pipelineService,
		Helper:          h,
	}
}

// GetNewsPage serves one page of the public feed. The feed only reflects
// committed records: an empty page is success, never an error.
func (h *NewsHandler) GetNewsPage(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		h.Helper.SendError(c, http.StatusBadRequest, "page must be a positive integer")
		return
	}

	articles, err := h.newsService.GetPage(page)
	if err != nil {
		h.Helper.SendError(c, http.StatusInternalServerError, "failed to load articles")
		return
	}

	c.JSON(http.StatusOK, models.NewsPageResponse{
		Success:  true,
		Articles: articles,
	})
}

// Refresh triggers one synchronous pipeline run and reports its outcome to
// the caller. This is the only path that surfaces pipeline errors.
func (h *NewsHandler) Refresh(c *gin.Context) {
	report, err := h.pipelineService.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			h.Helper.SendError(c, http.StatusConflict, err.Error())
			return
		}
		h.Helper.SendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.Helper.SendSuccess(c, gin.H{
		"message": fmt.Sprintf("fetched %d articles: %d new, %d skipped, %d failed, %d expired",
			report.Fetched, report.Created, report.Skipped, report.Failed, report.Expired),
	})
}
