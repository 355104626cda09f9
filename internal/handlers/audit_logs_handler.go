package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/models"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page := resource.ParseInt(c.Query("page"), resource.DefaultPage)
	if page <= 0 {
		page = resource.DefaultPage
	}

	limit := resource.ParseInt(c.Query("limit"), auditDefaultLimit)
	if limit <= 0 || limit > auditMaxLimit {
		limit = auditDefaultLimit
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at >= ?", from)
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err, unexpected("audit_count_failed"))
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Respond(c, err, unexpected("audit_list_failed"))
		return
	}

	httpresp.Page(c, resource.NewPage(logs, total, resource.ListQuery{Page: page, Limit: limit}))
}
