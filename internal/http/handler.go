package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"contest-analytics/internal/http/middleware"
	"contest-analytics/internal/model"
	"contest-analytics/internal/report"
	"contest-analytics/internal/service"
)

type Handler struct {
	analytics *service.AnalyticsService
	contest   *service.ContestService
	log       zerolog.Logger
}

func NewHandler(analytics *service.AnalyticsService, contest *service.ContestService, log zerolog.Logger) *Handler {
	return &Handler{analytics: analytics, contest: contest, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api")

	analytics := api.Group("/analytics")
	analytics.GET("", h.listReports)
	analytics.GET("/photographers-multiple-categories", h.photographersMultipleCategories)
	analytics.GET("/highest-scored-photo", h.highestScoredPhoto)
	analytics.GET("/categories-high-submissions", h.categoriesHighSubmissions)
	analytics.GET("/judges-high-activity", h.judgesHighActivity)
	analytics.GET("/average-votes-per-category", h.averageVotesPerCategory)
	analytics.GET("/photos-multiple-galleries", h.photosMultipleGalleries)
	analytics.GET("/photographers-multiple-wins", h.photographersMultipleWins)
	analytics.GET("/categories-no-winners", h.categoriesNoWinners)
	analytics.GET("/visitors-high-engagement", h.visitorsHighEngagement)
	analytics.GET("/category-most-submissions", h.categoryMostSubmissions)
	analytics.GET("/top-winners/:categoryName", h.topWinners)
	analytics.GET("/photographers-high-scores-no-awards", h.photographersHighScoresNoAwards)

	api.GET("/query-logs", h.listQueryLogs)
	api.POST("/query-logs", h.saveQueryLog)

	api.GET("/scores/photo/:photoId/total", h.photoScoreTotal)
	api.POST("/votes", h.submitVote)
	api.GET("/votes/photo/:photoId/count", h.photoVoteCount)
	api.GET("/votes/visitor/:id/activity", h.visitorActivity)
	api.GET("/winners", h.listWinners)
	api.GET("/winners/:id", h.getWinner)
	api.GET("/winners/category/:categoryId/top", h.categoryTopWinners)

	protected := api.Group("")
	protected.Use(authMiddleware)
	protected.POST("/scores", middleware.RequireRole(model.RoleJudge), h.submitScore)
	protected.POST("/winners/compute/:categoryName", middleware.RequireRole(model.RoleAdmin), h.computeWinners)
}

func (h *Handler) listReports(c *gin.Context) {
	c.JSON(http.StatusOK, listResponse(h.analytics.Catalog(), len(report.Catalog)))
}

func (h *Handler) photographersMultipleCategories(c *gin.Context) {
	rows, err := h.analytics.PhotographersInMultipleCategories(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) highestScoredPhoto(c *gin.Context) {
	photo, err := h.analytics.HighestScoredPhoto(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(photo))
}

func (h *Handler) categoriesHighSubmissions(c *gin.Context) {
	threshold := model.ParseThreshold(c.Query("threshold"), model.DefaultSubmissionThreshold)
	rows, err := h.analytics.CategoriesWithHighSubmissions(c.Request.Context(), threshold)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) judgesHighActivity(c *gin.Context) {
	threshold := model.ParseThreshold(c.Query("threshold"), model.DefaultJudgeThreshold)
	rows, err := h.analytics.JudgesWithHighActivity(c.Request.Context(), threshold)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) averageVotesPerCategory(c *gin.Context) {
	rows, err := h.analytics.AverageVotesPerCategory(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) photosMultipleGalleries(c *gin.Context) {
	rows, err := h.analytics.PhotosInMultipleGalleries(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) photographersMultipleWins(c *gin.Context) {
	rows, err := h.analytics.PhotographersWithMultipleWins(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) categoriesNoWinners(c *gin.Context) {
	rows, err := h.analytics.CategoriesWithNoWinners(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) visitorsHighEngagement(c *gin.Context) {
	threshold := model.ParseThreshold(c.Query("threshold"), model.DefaultVisitorThreshold)
	rows, err := h.analytics.VisitorsWithHighEngagement(c.Request.Context(), threshold)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) categoryMostSubmissions(c *gin.Context) {
	category, err := h.analytics.CategoryWithMostSubmissions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(category))
}

func (h *Handler) topWinners(c *gin.Context) {
	name := c.Param("categoryName")
	rows, err := h.analytics.TopWinnersByCategory(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(rows),
		"category": name,
		"data":     rows,
	})
}

func (h *Handler) photographersHighScoresNoAwards(c *gin.Context) {
	minScore := model.ParseThreshold(c.Query("minScore"), model.DefaultMinJudgeScore)
	rows, err := h.analytics.PhotographersWithHighScoresNoAwards(c.Request.Context(), minScore)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(rows, len(rows)))
}

func (h *Handler) listQueryLogs(c *gin.Context) {
	entries, err := h.analytics.RecentQueryLogs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(entries, len(entries)))
}

func (h *Handler) saveQueryLog(c *gin.Context) {
	var input service.QueryLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	entry, err := h.analytics.SaveQueryLog(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(entry))
}

func (h *Handler) submitVote(c *gin.Context) {
	var input service.VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	vote, err := h.contest.SubmitVote(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(vote))
}

func (h *Handler) submitScore(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var input service.ScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	score, err := h.contest.SubmitScore(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(score))
}

func (h *Handler) listWinners(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("categoryId")); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid category id"))
			return
		}
		categoryID = &parsed
	}

	winners, err := h.contest.ListWinners(c.Request.Context(), categoryID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(winners, len(winners)))
}

func (h *Handler) getWinner(c *gin.Context) {
	id, ok := parseID(c, "id", "invalid winner id")
	if !ok {
		return
	}
	winner, err := h.contest.Winner(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(winner))
}

func (h *Handler) categoryTopWinners(c *gin.Context) {
	categoryID, ok := parseID(c, "categoryId", "invalid category id")
	if !ok {
		return
	}
	winners, err := h.contest.CategoryTopWinners(c.Request.Context(), categoryID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(winners, len(winners)))
}

func (h *Handler) photoScoreTotal(c *gin.Context) {
	photoID, ok := parseID(c, "photoId", "invalid photo id")
	if !ok {
		return
	}
	total, err := h.contest.PhotoScoreTotal(c.Request.Context(), photoID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(total))
}

func (h *Handler) photoVoteCount(c *gin.Context) {
	photoID, ok := parseID(c, "photoId", "invalid photo id")
	if !ok {
		return
	}
	count, err := h.contest.PhotoVoteCount(c.Request.Context(), photoID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(count))
}

func (h *Handler) visitorActivity(c *gin.Context) {
	visitorID, ok := parseID(c, "id", "invalid visitor id")
	if !ok {
		return
	}
	history, err := h.contest.VisitorActivity(c.Request.Context(), visitorID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(history))
}

type computeWinnersRequest struct {
	Announcement string `json:"announcement"`
}

func (h *Handler) computeWinners(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req computeWinnersRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid request body"))
			return
		}
	}

	winners, err := h.contest.ComputeWinners(c.Request.Context(), principal, c.Param("categoryName"), req.Announcement)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(winners, len(winners)))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, errorResponse("Category not found"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("query failed"))
	}
}

func parseID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(message))
		return uuid.Nil, false
	}
	return id, true
}

func successResponse(data interface{}) gin.H {
	return gin.H{"success": true, "data": data}
}

func listResponse(data interface{}, count int) gin.H {
	return gin.H{"success": true, "count": count, "data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"success": false, "message": message}
}
