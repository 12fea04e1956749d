package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"camperhub/internal/app/dto"
	"camperhub/internal/app/services/adminusers"
	"camperhub/internal/app/services/ownerstats"
	domainuser "camperhub/internal/domain/user"
)

type AdminHandler struct {
	Users  *adminusers.Service
	Stats  *ownerstats.Service
	Logger *slog.Logger
}

// ListUsers serves the paginated admin user table. Sorting happens after the
// derived counts are attached, so campersUploaded and timesBooked are valid
// sort columns.
func (h AdminHandler) ListUsers(c *gin.Context) {
	if h.Users == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	if _, ok := requireAdmin(c); !ok {
		return
	}
	params := adminusers.ListParams{
		Page:      parseInt(c.Query("page")),
		Limit:     parseInt(c.Query("limit")),
		Search:    c.Query("search"),
		Role:      domainuser.Role(c.Query("role")),
		Status:    domainuser.AccountStatus(c.Query("status")),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	page, err := h.Users.List(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, adminusers.ErrInvalidSortKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort key"})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("user listing failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewAdminUserList(page))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h AdminHandler) UpdateUserStatus(c *gin.Context) {
	if h.Users == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin service unavailable"})
		return
	}
	if _, ok := requireAdmin(c); !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	err := h.Users.UpdateStatus(c.Request.Context(), domainuser.ID(id), domainuser.AccountStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h AdminHandler) OwnerStats(c *gin.Context) {
	if h.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats service unavailable"})
		return
	}
	if _, ok := requireAdmin(c); !ok {
		return
	}
	rows, err := h.Stats.Owners(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("owner stats failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func parseInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
