package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/dependency"
	"modforge-backend/internal/models"
)

type DependenciesHandler struct{}

func NewDependenciesHandler() *DependenciesHandler {
	return &DependenciesHandler{}
}

// Manage dispatches on the request's action: search, add, remove, update,
// list, or check_updates. Build file edits are pure text transforms; the
// caller persists the result back through the files API.
func (h *DependenciesHandler) Manage(c *gin.Context) {
	var req models.DependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	switch req.Action {
	case "search":
		results := dependency.Search(req.Query)
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"action":       "search",
			"query":        req.Query,
			"results":      results,
			"totalResults": len(results),
		})

	case "add":
		if req.Dependency == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "dependency is required"})
			return
		}
		updated := dependency.Add(req.BuildFile, req.Dependency, req.Platform)
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"action":           "add",
			"dependency":       req.Dependency.Name,
			"version":          req.Dependency.Version,
			"updatedBuildFile": updated,
			"message":          "Successfully added " + req.Dependency.Name + " v" + req.Dependency.Version,
		})

	case "remove":
		if req.Dependency == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "dependency is required"})
			return
		}
		updated := dependency.Remove(req.BuildFile, req.Dependency.Name)
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"action":           "remove",
			"dependency":       req.Dependency.Name,
			"updatedBuildFile": updated,
			"message":          "Successfully removed " + req.Dependency.Name,
		})

	case "update":
		if req.Dependency == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "dependency is required"})
			return
		}
		updated := dependency.Replace(req.BuildFile, req.Dependency, req.Platform)
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"action":           "update",
			"dependency":       req.Dependency.Name,
			"oldVersion":       req.Dependency.OldVersion,
			"newVersion":       req.Dependency.Version,
			"updatedBuildFile": updated,
			"message":          "Successfully updated " + req.Dependency.Name,
		})

	case "list":
		deps := dependency.List(req.BuildFile)
		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"action":            "list",
			"dependencies":      deps,
			"totalDependencies": len(deps),
		})

	case "check_updates":
		updates := dependency.CheckUpdates(req.BuildFile)
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"action":           "check_updates",
			"availableUpdates": updates,
			"totalUpdates":     len(updates),
		})

	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unsupported action", Message: req.Action})
	}
}
