package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	"github.com/davicafu/moderlab/internal/shared/app/apperror"
	"github.com/davicafu/moderlab/internal/shared/app/dispatch"
	"github.com/davicafu/moderlab/pkg/utils"
)

// ModerationHandler encapsula los endpoints HTTP de tareas de moderación.
// Solo traduce HTTP <-> comandos; toda la lógica vive detrás del Sender.
type ModerationHandler struct {
	sender dispatch.Sender
}

// NewModerationHandler crea un nuevo ModerationHandler.
func NewModerationHandler(sender dispatch.Sender) *ModerationHandler {
	return &ModerationHandler{sender: sender}
}

// --- Handlers ---

// ModerateContent endpoint POST /moderation-tasks
func (h *ModerationHandler) ModerateContent(c *gin.Context) {
	var req struct {
		ContentType string    `json:"content_type" binding:"required"`
		ContentID   uuid.UUID `json:"content_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	contentType, err := moderationDomain.ParseContentType(req.ContentType)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	result, err := h.sender.Send(c.Request.Context(), application.ModerateContent{
		ContentType: contentType,
		ContentID:   req.ContentID,
	})
	if err != nil {
		sendCommandError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusCreated, gin.H{"task_id": result})
}

// ProvideDecision endpoint PUT /moderation-tasks/:id/decision
func (h *ModerationHandler) ProvideDecision(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid task id")
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	decision, err := moderationDomain.ParseDecision(req.Decision)
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	if _, err := h.sender.Send(c.Request.Context(), application.ProvideDecision{
		TaskID:   taskID,
		Decision: decision,
	}); err != nil {
		sendCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReassignAdmin endpoint PUT /moderation-tasks/:id/admin
func (h *ModerationHandler) ReassignAdmin(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid task id")
		return
	}

	var req struct {
		AdminID uuid.UUID `json:"admin_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	if _, err := h.sender.Send(c.Request.Context(), application.ReassignAdmin{
		TaskID:  taskID,
		AdminID: req.AdminID,
	}); err != nil {
		sendCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LoadMyTasks endpoint GET /moderation-tasks/my-tasks con paginación
func (h *ModerationHandler) LoadMyTasks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.sender.Send(c.Request.Context(), application.LoadMyTasks{
		Pagination: application.Pagination{Limit: limit, Offset: offset},
	})
	if err != nil {
		sendCommandError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, result)
}

// sendCommandError traduce los errores de aplicación y dominio a HTTP.
func sendCommandError(c *gin.Context, err error) {
	if kind, ok := apperror.KindOf(err); ok {
		switch kind {
		case apperror.KindPermission:
			utils.SendError(c, http.StatusForbidden, err.Error())
		case apperror.KindNotFound:
			utils.SendNotFound(c, err.Error())
		case apperror.KindConflict:
			utils.SendError(c, http.StatusConflict, err.Error())
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	if errors.Is(err, moderationDomain.ErrTaskAlreadyDecided) {
		utils.SendError(c, http.StatusConflict, err.Error())
		return
	}

	utils.SendInternalServerError(c, err.Error())
}
