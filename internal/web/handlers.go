package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JamesPrial/todo-notes/internal/task"
	"github.com/JamesPrial/todo-notes/internal/view"
)

type textRequest struct {
	Text string `json:"text"`
}

type listResponse struct {
	Tasks   []task.Task `json:"tasks"`
	Empty   string      `json:"empty"`
	Message string      `json:"message,omitempty"`
}

type editResponse struct {
	Outcome string     `json:"outcome"`
	Task    *task.Task `json:"task,omitempty"`
}

func (s *Server) handleList(c *gin.Context) {
	filter, err := task.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proj := view.Project(s.store.Tasks(), view.State{Filter: filter, Search: c.Query("search")})
	c.JSON(http.StatusOK, listResponse{
		Tasks:   proj.Tasks,
		Empty:   proj.Empty.String(),
		Message: proj.Empty.Message(s.locale),
	})
}

func (s *Server) handleAdd(c *gin.Context) {
	req, ok := bindText(c)
	if !ok {
		return
	}

	t, added, err := s.store.Add(req.Text)
	if err != nil {
		s.storageError(c, err)
		return
	}
	if !added {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleToggle(c *gin.Context) {
	t, ok, err := s.store.Toggle(c.Param("id"))
	if err != nil {
		s.storageError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleEdit(c *gin.Context) {
	req, ok := bindText(c)
	if !ok {
		return
	}

	id := c.Param("id")
	outcome, err := s.store.Edit(id, req.Text)
	if err != nil {
		s.storageError(c, err)
		return
	}

	resp := editResponse{Outcome: outcome.String()}
	if t, found := s.store.Get(id); found {
		resp.Task = &t
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDelete(c *gin.Context) {
	if _, err := s.store.Remove(c.Param("id")); err != nil {
		s.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindText decodes a {"text": ...} body, writing a 400 on failure.
func bindText(c *gin.Context) (textRequest, bool) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}

// storageError reports a failed save. The mutation itself is kept in memory.
func (s *Server) storageError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
