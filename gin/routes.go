package gin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/blogsumm"
	"github.com/gin-gonic/gin"
)

// History pagination bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Response messages.
const (
	msgInvalidURL        = "Invalid or missing URL"
	msgInvalidPagination = "Invalid pagination parameters"
	msgInternal          = "Internal server error"
)

func (s *Server) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/summarize", s.handleSummarize)
		api.GET("/summaries", s.handleListSummaries)
		api.GET("/summaries/:id", s.handleGetSummary)
	}
}

type summarizeRequest struct {
	URL string `json:"url"`
}

// summarizeResponse is the body of a successful summarize call.
type summarizeResponse struct {
	Success          bool     `json:"success"`
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	UrduSummary      string   `json:"urdu_summary"`
	KeyPoints        []string `json:"key_points"`
	WordCount        int      `json:"word_count"`
	SummaryWordCount int      `json:"summary_word_count"`
	CompressionRatio float64  `json:"compression_ratio"`
	ReadingTime      int      `json:"reading_time"`
	URL              string   `json:"url"`
}

// summaryView is a stored record as returned by the history endpoints.
type summaryView struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary"`
	UrduSummary      string    `json:"urdu_summary"`
	KeyPoints        []string  `json:"key_points"`
	WordCount        int       `json:"word_count"`
	SummaryWordCount int       `json:"summary_word_count"`
	CompressionRatio float64   `json:"compression_ratio"`
	ReadingTime      int       `json:"reading_time"`
	Strategy         string    `json:"strategy"`
	CreatedAt        time.Time `json:"created_at"`
}

func newSummaryView(rec *blogsumm.SummaryRecord) summaryView {
	return summaryView{
		ID:               rec.ID,
		URL:              rec.URL,
		Title:            rec.Title,
		Summary:          rec.Summary,
		UrduSummary:      rec.TranslatedSummary,
		KeyPoints:        keyPoints(rec.KeyPoints),
		WordCount:        rec.WordCount,
		SummaryWordCount: rec.SummaryWordCount,
		CompressionRatio: rec.CompressionRatio,
		ReadingTime:      rec.ReadingTimeMinutes,
		Strategy:         string(rec.Strategy),
		CreatedAt:        rec.CreatedAt,
	}
}

// keyPoints keeps key_points a JSON array even when empty.
func keyPoints(points []string) []string {
	if points == nil {
		return []string{}
	}
	return points
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidURL)
		return
	}

	rec, err := s.pipeline.Run(c.Request.Context(), req.URL)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summarizeResponse{
		Success:          true,
		Title:            rec.Title,
		Summary:          rec.Summary,
		UrduSummary:      rec.TranslatedSummary,
		KeyPoints:        keyPoints(rec.KeyPoints),
		WordCount:        rec.WordCount,
		SummaryWordCount: rec.SummaryWordCount,
		CompressionRatio: rec.CompressionRatio,
		ReadingTime:      rec.ReadingTimeMinutes,
		URL:              rec.URL,
	})
}

func (s *Server) handleListSummaries(c *gin.Context) {
	limit, err := queryInt(c, "limit", DefaultPageSize)
	if err != nil || limit < 1 {
		respondMessage(c, http.StatusBadRequest, msgInvalidPagination)
		return
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		respondMessage(c, http.StatusBadRequest, msgInvalidPagination)
		return
	}

	filter := blogsumm.SummaryFilter{Limit: limit, Offset: offset}
	if url := c.Query("url"); url != "" {
		filter.URL = &url
	}

	recs, err := s.summaries.FindSummaries(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}

	views := make([]summaryView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, newSummaryView(rec))
	}
	c.JSON(http.StatusOK, gin.H{
		"summaries": views,
		"limit":     limit,
		"offset":    offset,
	})
}

func (s *Server) handleGetSummary(c *gin.Context) {
	rec, err := s.summaries.FindSummaryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSummaryView(rec))
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// respondError writes err using its application code. Errors without a
// code are reported as internal errors, with details outside production.
func (s *Server) respondError(c *gin.Context, err error) {
	var appErr *blogsumm.Error
	if errors.As(err, &appErr) {
		status := ErrorStatusCode(appErr.Code)
		if status >= http.StatusInternalServerError {
			s.logger.Error("request failed", "path", c.Request.URL.Path, "code", appErr.Code, "err", err)
		}
		respondMessage(c, status, appErr.Message)
		return
	}

	s.logger.Error("unexpected error", "path", c.Request.URL.Path, "err", err)
	body := gin.H{"error": msgInternal}
	if !s.production {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	blogsumm.EINVALID:  http.StatusBadRequest,
	blogsumm.ENOTFOUND: http.StatusNotFound,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if status, ok := codes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
