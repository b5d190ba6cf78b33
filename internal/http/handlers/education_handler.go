// Education content HTTP handlers.
//
// This file exposes the article catalog plus the per-user education features:
//   - GET /articles                  (search/filter the catalog)
//   - GET /articles/categories      (distinct category list)
//   - GET /articles/{id}            (one article)
//   - GET /articles/{id}/related    (related articles)
//   - GET /articles/{id}/summary    (short preview text)
//   - PUT /articles/{id}/favorite   (toggle favorite)
//   - GET /favorites                (favorited articles)
//   - POST/GET /articles/{id}/comments
//   - POST /articles/{id}/reads     (log reading time)
//   - GET /reads                    (reading log)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/articles"
	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/services"
	"github.com/mindgenz/go-mind-backend/internal/utils"
)

// EducationService defines per-user education operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type EducationService interface {
	// ToggleFavorite flips the favorite state and reports the new one.
	ToggleFavorite(ctx context.Context, userID string, articleID int) (bool, error)
	// Favorites returns the user's favorited articles in toggle order.
	Favorites(ctx context.Context, userID string) ([]articles.Article, error)
	// AddComment stores a private note on an article, newest first.
	AddComment(ctx context.Context, userID string, articleID int, text string) (*domain.Comment, error)
	// Comments returns the user's notes for one article, newest first.
	Comments(ctx context.Context, userID string, articleID int) ([]domain.Comment, error)
	// LogRead appends a reading-time sample.
	LogRead(ctx context.Context, userID string, articleID, seconds int) (*domain.ReadLog, error)
	// ReadLogs returns the user's samples in append order.
	ReadLogs(ctx context.Context, userID string) ([]domain.ReadLog, error)
}

// AddCommentRequest is the JSON payload for commenting on an article.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required" example:"artikel ini membantu"`
}

// LogReadRequest is the JSON payload for logging reading time.
type LogReadRequest struct {
	Seconds int `json:"seconds" binding:"required" example:"95"`
}

// articleID parses the :id path parameter.
func articleID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "article id must be a positive integer")
		return 0, false
	}
	return id, true
}

// ListArticles godoc
// @ID          listArticles
// @Summary     Browse articles
// @Description Returns catalog articles, optionally filtered by free-text query and category. Results are ranked by relevance when a query is given.
// @Tags        Articles
// @Produce     json
//
// @Param       q         query  string  false "Free-text search"   example(tidur)
// @Param       category  query  string  false "Category filter"    example(Gaya Hidup)
//
// @Success     200  {array}  articles.Article
// @Router      /articles [get]
func (h *Handlers) ListArticles(c *gin.Context) {
	ok(c, http.StatusOK, h.catalog.List(c.Query("q"), c.Query("category")))
}

// ArticleCategories godoc
// @ID          articleCategories
// @Summary     Article categories
// @Description Returns the distinct categories in catalog order.
// @Tags        Articles
// @Produce     json
//
// @Success     200  {object}  map[string][]string
// @Router      /articles/categories [get]
func (h *Handlers) ArticleCategories(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     One article
// @Description Returns a single article by id.
// @Tags        Articles
// @Produce     json
//
// @Param       id  path  int  true  "Article ID"  example(1)
//
// @Success     200  {object}  articles.Article
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Router      /articles/{id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	art, err := h.catalog.Get(id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
		return
	}
	ok(c, http.StatusOK, art)
}

// RelatedArticles godoc
// @ID          relatedArticles
// @Summary     Related articles
// @Description Returns articles related to the given one (same category first).
// @Tags        Articles
// @Produce     json
//
// @Param       id     path   int  true   "Article ID"  example(1)
// @Param       limit  query  int  false  "Max results" default(3)
//
// @Success     200  {array}   articles.Article
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Router      /articles/{id}/related [get]
func (h *Handlers) RelatedArticles(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	rel, err := h.catalog.Related(id, limit)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
		return
	}
	ok(c, http.StatusOK, rel)
}

// ArticleSummary godoc
// @ID          articleSummary
// @Summary     Article preview
// @Description Returns the first sentences of the article body as a preview.
// @Tags        Articles
// @Produce     json
//
// @Param       id  path  int  true  "Article ID"  example(1)
//
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Router      /articles/{id}/summary [get]
func (h *Handlers) ArticleSummary(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	sum, err := h.catalog.Summarize(id)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
		return
	}
	ok(c, http.StatusOK, gin.H{"summary": sum})
}

// ToggleFavorite godoc
// @ID          toggleFavorite
// @Summary     Toggle a favorite
// @Description Flips the favorite state of an article for the current user and returns the new state.
// @Tags        Articles
// @Produce     json
//
// @Security    BearerAuth
// @Param       id  path  int  true  "Article ID"  example(1)
//
// @Success     200  {object}  map[string]bool
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{id}/favorite [put]
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	fav, err := h.eduSvc.ToggleFavorite(c.Request.Context(), userID(c), id)
	switch {
	case err == nil:
		ok(c, http.StatusOK, gin.H{"favorited": fav})
	case errors.Is(err, services.ErrArticleNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     Favorited articles
// @Description Returns the user's favorited articles in toggle order.
// @Tags        Articles
// @Produce     json
//
// @Security    BearerAuth
// @Success     200  {array}   articles.Article
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /favorites [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	favs, err := h.eduSvc.Favorites(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, favs)
}

// AddComment godoc
// @ID          addComment
// @Summary     Comment on an article
// @Description Stores a private note on an article for the current user.
// @Tags        Articles
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       id    path  int  true  "Article ID"  example(1)
// @Param       body  body  handlers.AddCommentRequest  true  "Comment payload"
//
// @Success     201  {object}  domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{id}/comments [post]
func (h *Handlers) AddComment(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	cm, err := h.eduSvc.AddComment(c.Request.Context(), userID(c), id, req.Text)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, cm)
	case errors.Is(err, services.ErrEmptyComment):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrArticleNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// ListComments godoc
// @ID          listComments
// @Summary     Article comments
// @Description Returns the user's notes for one article, newest first.
// @Tags        Articles
// @Produce     json
//
// @Security    BearerAuth
// @Param       id  path  int  true  "Article ID"  example(1)
//
// @Success     200  {array}   domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	list, err := h.eduSvc.Comments(c.Request.Context(), userID(c), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}

// LogRead godoc
// @ID          logRead
// @Summary     Log reading time
// @Description Records how long the user spent reading an article.
// @Tags        Articles
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       id    path  int  true  "Article ID"  example(1)
// @Param       body  body  handlers.LogReadRequest  true  "Reading time payload"
//
// @Success     201  {object}  domain.ReadLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Article not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{id}/reads [post]
func (h *Handlers) LogRead(c *gin.Context) {
	id, okID := articleID(c)
	if !okID {
		return
	}
	var req LogReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	lg, err := h.eduSvc.LogRead(c.Request.Context(), userID(c), id, req.Seconds)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, lg)
	case errors.Is(err, services.ErrInvalidReadSeconds):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrArticleNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "article not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// ListReads godoc
// @ID          listReads
// @Summary     Reading log
// @Description Returns the user's reading-time samples in append order.
// @Tags        Articles
// @Produce     json
//
// @Security    BearerAuth
// @Success     200  {array}   domain.ReadLog
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reads [get]
func (h *Handlers) ListReads(c *gin.Context) {
	list, err := h.eduSvc.ReadLogs(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}
