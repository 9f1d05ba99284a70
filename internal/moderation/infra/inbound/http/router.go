package http

import "github.com/gin-gonic/gin"

// RegisterModerationRoutes registra las rutas HTTP del dominio de Moderación.
func RegisterModerationRoutes(r *gin.Engine, handler *ModerationHandler) {
	// Agrupamos todas las rutas bajo el prefijo "/moderation-tasks"
	tasks := r.Group("/moderation-tasks")
	{
		tasks.POST("/", handler.ModerateContent)            // Abrir una tarea de moderación
		tasks.GET("/my-tasks", handler.LoadMyTasks)         // Tareas del usuario actual
		tasks.PUT("/:id/decision", handler.ProvideDecision) // Decidir sobre una tarea
		tasks.PUT("/:id/admin", handler.ReassignAdmin)      // Reasignar el admin
	}
}
