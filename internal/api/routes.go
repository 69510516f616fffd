// Package api exposes the HTTP/websocket surface around the search
// engine: CORS middleware, an APIHandler holding shared dependencies,
// and a websocket Hub streaming live matching seeds to subscribers as
// a search runs.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tailscale/hujson"

	"github.com/rawblock/seedscan/internal/clause"
	"github.com/rawblock/seedscan/internal/db"
	"github.com/rawblock/seedscan/internal/report"
	"github.com/rawblock/seedscan/internal/search"
	"github.com/rawblock/seedscan/internal/validate"
	"github.com/rawblock/seedscan/pkg/models"
)

// job tracks one in-flight or completed search alongside its session.
type job struct {
	record  models.SearchJob
	session *search.Session
	sink    *report.ChannelSink
	cancel  context.CancelFunc
}

// JobManager owns every search started through the HTTP API.
type JobManager struct {
	mu       sync.Mutex
	jobs     map[string]*job
	dbStore  *db.PostgresStore
	wsHub    *Hub
	workers  int
}

func NewJobManager(dbStore *db.PostgresStore, wsHub *Hub, workers int) *JobManager {
	return &JobManager{jobs: make(map[string]*job), dbStore: dbStore, wsHub: wsHub, workers: workers}
}

type APIHandler struct {
	jobs  *JobManager
	wsHub *Hub
}

func SetupRouter(jobs *JobManager, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := &APIHandler{jobs: jobs, wsHub: wsHub}
	limiter := NewRateLimiter(30, 10)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.handleHealth)
		v1.POST("/searches", limiter.Middleware(), AuthMiddleware(), h.handleStartSearch)
		v1.GET("/searches/:id", h.handleGetSearch)
		v1.GET("/searches/:id/stream", wsHub.Subscribe)
	}
	return r
}

func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "operational", "engine": "seedscan"})
}

type startSearchRequest struct {
	Query      models.RawQuery `json:"query"`
	SeedStart  uint64          `json:"seedStart"`
	SeedEnd    uint64          `json:"seedEnd"`
	Cutoff     int             `json:"cutoff"`
	AutoCutoff bool            `json:"autoCutoff"`
}

// maxSeedsPerSearch caps a single request's seed range to prevent
// unbounded background resource consumption.
const maxSeedsPerSearch = 50_000_000

func (h *APIHandler) handleStartSearch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body: " + err.Error()})
		return
	}
	// hujson.Standardize tolerates the // comments and trailing commas a
	// query document author may have left in, reducing it to plain JSON
	// before decoding.
	body, err = hujson.Standardize(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	var req startSearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if len(req.Query.Must) == 0 && len(req.Query.Should) == 0 && len(req.Query.MustNot) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required and must contain at least one must/should/mustNot clause"})
		return
	}
	if req.SeedEnd <= req.SeedStart {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seedEnd must be greater than seedStart"})
		return
	}
	if req.SeedEnd-req.SeedStart > maxSeedsPerSearch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seed range too large", "maxSeeds": maxSeedsPerSearch})
		return
	}

	q, errs := clause.NormalizeQuery(req.Query)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "query normalization failed", "details": msgs})
		return
	}
	issues := validate.Query(q)
	if validate.HasErrors(issues) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query validation failed", "issues": issues})
		return
	}

	id := uuid.NewString()
	j := &job{
		record: models.SearchJob{
			ID: id, Query: q, Cutoff: req.Cutoff, AutoCutoff: req.AutoCutoff,
			SeedStart: req.SeedStart, SeedEnd: req.SeedEnd, Status: "running",
			CreatedAtUnix: time.Now().Unix(),
		},
		session: search.NewSession(q, req.Cutoff, req.AutoCutoff),
		sink:    report.NewChannelSink(256),
	}
	h.jobs.mu.Lock()
	h.jobs.jobs[id] = j
	h.jobs.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	go func() {
		defer cancel()
		seeds := search.EnumerateSeeds(req.SeedStart, req.SeedEnd)
		j.session.Run(ctx, seeds, h.jobs.workers, func(t models.Tally) {
			j.sink.Accept(t)
			if h.jobs.dbStore != nil {
				_ = h.jobs.dbStore.SaveResult(context.Background(), id, t)
			}
			if h.wsHub != nil {
				payload := fmt.Sprintf(`{"jobId":%q,"seed":%q,"score":%d}`, id, t.Seed, t.Score)
				h.wsHub.Broadcast([]byte(payload))
			}
		})
		h.jobs.mu.Lock()
		j.record.Status = "completed"
		h.jobs.mu.Unlock()
		if h.jobs.dbStore != nil {
			_ = h.jobs.dbStore.SaveJob(context.Background(), h.jobs.snapshot(j))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"id": id, "status": "running"})
}

func (jm *JobManager) snapshot(j *job) models.SearchJob {
	progress := j.session.Progress()
	rec := j.record
	rec.SeedsScanned = progress.SeedsScanned
	rec.ResultsFound = progress.ResultsFound
	rec.LearnedCutoff = progress.LearnedCutoff
	return rec
}

func (h *APIHandler) handleGetSearch(c *gin.Context) {
	id := c.Param("id")
	h.jobs.mu.Lock()
	j, ok := h.jobs.jobs[id]
	h.jobs.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "search job not found"})
		return
	}
	progress := j.session.Progress()
	c.JSON(http.StatusOK, gin.H{
		"id":            id,
		"status":        j.record.Status,
		"seedsScanned":  progress.SeedsScanned,
		"resultsFound":  progress.ResultsFound,
		"learnedCutoff": progress.LearnedCutoff,
	})
}
