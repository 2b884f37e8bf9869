package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/wordbench/internal/task"
)

func respondError(c *gin.Context, status int, err error) {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTasks(c *gin.Context) {
	if s == nil || s.tasks == nil {
		respondError(c, http.StatusInternalServerError, errors.New("task registry not configured"))
		return
	}

	type taskJSON struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Samples     int    `json:"samples"`
	}

	out := make([]taskJSON, 0)
	for _, t := range s.tasks.List() {
		out = append(out, taskJSON{
			Name:        t.Name,
			Description: t.Description,
			Samples:     len(t.Samples(task.Options{})),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetLeaderboard(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("store not configured"))
		return
	}

	taskName := strings.TrimSpace(c.Query("task"))
	if taskName == "" {
		respondError(c, http.StatusBadRequest, errors.New("task is required"))
		return
	}

	limit := 20
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}

	runs, err := s.store.GetLeaderboard(c.Request.Context(), taskName, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleGetModelHistory(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("store not configured"))
		return
	}

	model := strings.TrimSpace(c.Query("model"))
	taskName := strings.TrimSpace(c.Query("task"))
	if model == "" || taskName == "" {
		respondError(c, http.StatusBadRequest, errors.New("model and task are required"))
		return
	}

	runs, err := s.store.GetModelHistory(c.Request.Context(), model, taskName)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, runs)
}

func (s *Server) handleGetTranscripts(c *gin.Context) {
	if s == nil || s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("store not configured"))
		return
	}

	runID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || runID <= 0 {
		respondError(c, http.StatusBadRequest, errors.New("invalid run id"))
		return
	}

	ts, err := s.store.GetTranscripts(c.Request.Context(), runID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, ts)
}
