package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/svaldez/catalog-admin/internal/tasks"
)

// TasksController enqueues background catalog syncs and reports task status.
type TasksController struct {
	client *tasks.Client
}

func NewTasksController(client *tasks.Client) *TasksController {
	return &TasksController{client: client}
}

var syncKinds = map[string]bool{
	"brands":   true,
	"products": true,
}

// RunSync enqueues a background sync pass for one entity kind and returns
// the task id for polling.
// POST /api/tasks/sync/:kind
func (tc *TasksController) RunSync(c *gin.Context) {
	kind := c.Param("kind")
	if !syncKinds[kind] {
		respondBadRequest(c, "unknown sync kind")
		return
	}

	ids, err := tc.client.Add(tasks.SyncCatalogTask{Kind: kind}).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue sync task")
		return
	}

	var taskID string
	if len(ids) > 0 {
		taskID = ids[0]
	}
	respondAccepted(c, "sync enqueued", gin.H{"task_id": taskID, "kind": kind})
}

// GetStatus returns the status of an enqueued task.
// GET /api/tasks/:id
func (tc *TasksController) GetStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
