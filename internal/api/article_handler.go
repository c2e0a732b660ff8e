package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ecotimes/news-api/internal/apperr"
	"github.com/ecotimes/news-api/internal/config"
	"github.com/ecotimes/news-api/internal/models"
	"github.com/ecotimes/news-api/internal/service"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// Create handles POST /article. The author identity always comes from
// the verified token, not the request body.
func (h *ArticleHandler) Create(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		respondError(c, apperr.Unauthorized("missing bearer token"))
		return
	}

	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		respondError(c, apperr.InvalidInput("invalid article payload"))
		return
	}
	article.AuthorEmail = claims.Email
	article.AuthorName = claims.Name

	id, err := h.services.Article.Create(c.Request.Context(), &article)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"id": id})
}

// Get handles GET /article/:id. Anonymous callers can read everything
// except premium-status articles.
func (h *ArticleHandler) Get(c *gin.Context) {
	var viewerEmail string
	if claims, ok := ClaimsFrom(c); ok {
		viewerEmail = claims.Email
	}

	article, err := h.services.Article.GetForViewer(c.Request.Context(), c.Param("id"), viewerEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, article)
}

// List handles GET /article and GET /all-articles with query params
// search, publisher and tags (comma-separated, ANY-of)
func (h *ArticleHandler) List(c *gin.Context) {
	filter := models.ArticleFilter{
		Search:    c.Query("search"),
		Publisher: c.Query("publisher"),
	}
	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	ctx, cancel := contextWithTimeout(c, h.cfg.Server.QueryTimeout)
	defer cancel()

	articles, err := h.services.Article.List(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	respondData(c, http.StatusOK, articles)
}

// MyArticles handles GET /my-article/:email. The ownership guard has
// already matched the path email against the authenticated identity.
func (h *ArticleHandler) MyArticles(c *gin.Context) {
	articles, err := h.services.Article.ListByAuthor(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	respondData(c, http.StatusOK, articles)
}

// Update handles PUT /article/:id. Existing articles may only be edited
// by their author or an admin; an unknown id upserts a fresh article
// owned by the caller.
func (h *ArticleHandler) Update(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		respondError(c, apperr.Unauthorized("missing bearer token"))
		return
	}

	var patch models.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperr.InvalidInput("invalid article payload"))
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	existing, err := h.services.Article.Get(ctx, id)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil && existing.AuthorEmail != claims.Email {
		isAdmin, err := h.services.User.IsAdmin(ctx, claims.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if !isAdmin {
			respondError(c, apperr.Forbidden("not your article"))
			return
		}
	}

	if err := h.services.Article.Update(ctx, id, claims.Email, patch); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id})
}

// Delete handles DELETE /article/:id. Idempotent: a missing id reports
// zero deleted rows.
func (h *ArticleHandler) Delete(c *gin.Context) {
	deleted, err := h.services.Article.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": deleted})
}

// Approve handles PATCH /article/approve/:id
func (h *ArticleHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Article.Approve(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id, "status": models.StatusApproved})
}

// MakePremium handles PATCH /article/premium/:id
func (h *ArticleHandler) MakePremium(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Article.MakePremium(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id, "status": models.StatusPremium})
}

// Decline handles PATCH /article/decline/:id with a reason in the body
func (h *ArticleHandler) Decline(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.InvalidInput("decline reason is required"))
		return
	}

	id := c.Param("id")
	if err := h.services.Article.Decline(c.Request.Context(), id, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id, "status": models.StatusDeclined})
}

// RecordView handles PATCH /article/view/:id (public)
func (h *ArticleHandler) RecordView(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Article.RecordView(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id})
}

// Trending handles GET /article-trending
func (h *ArticleHandler) Trending(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.cfg.Server.QueryTimeout)
	defer cancel()

	articles, err := h.services.Article.Trending(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	respondData(c, http.StatusOK, articles)
}

// PublisherStats handles GET /publisher-stats
func (h *ArticleHandler) PublisherStats(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.cfg.Server.QueryTimeout)
	defer cancel()

	stats, err := h.services.Article.PublisherStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		stats = []models.PublisherCount{}
	}

	respondData(c, http.StatusOK, stats)
}

// TagStats handles GET /tags-stats
func (h *ArticleHandler) TagStats(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.cfg.Server.QueryTimeout)
	defer cancel()

	stats, err := h.services.Article.TagStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		stats = []models.TagCount{}
	}

	respondData(c, http.StatusOK, stats)
}
