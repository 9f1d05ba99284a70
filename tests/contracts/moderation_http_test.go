package contracts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	moderationHttp "github.com/davicafu/moderlab/internal/moderation/infra/inbound/http"
	"github.com/davicafu/moderlab/internal/shared/app/apperror"
)

// stubSender devuelve una respuesta fija y captura la petición recibida.
type stubSender struct {
	result any
	err    error
	got    any
}

func (s *stubSender) Send(ctx context.Context, req any) (any, error) {
	s.got = req
	return s.result, s.err
}

func newRouter(sender *stubSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	moderationHttp.RegisterModerationRoutes(router, moderationHttp.NewModerationHandler(sender))
	return router
}

func TestModerateContent_HTTPContract(t *testing.T) {
	// Arrange
	taskID := uuid.New()
	sender := &stubSender{result: taskID}
	router := newRouter(sender)

	contentID := uuid.New()
	body := `{"content_type":"meetup","content_id":"` + contentID.String() + `"}`

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/moderation-tasks/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)

	cmd, ok := sender.got.(application.ModerateContent)
	require.True(t, ok)
	assert.Equal(t, moderationDomain.ContentMeetup, cmd.ContentType)
	assert.Equal(t, contentID, cmd.ContentID)

	var resp struct {
		Data struct {
			TaskID string `json:"task_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, taskID.String(), resp.Data.TaskID)
}

func TestModerateContent_InvalidContentType(t *testing.T) {
	// Arrange
	sender := &stubSender{}
	router := newRouter(sender)
	body := `{"content_type":"video","content_id":"` + uuid.New().String() + `"}`

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/moderation-tasks/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert: no llega al Sender.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, sender.got)
}

func TestProvideDecision_HTTPStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"permiso denegado", apperror.PermissionDenied("not yours"), http.StatusForbidden},
		{"no encontrada", apperror.NotFound("task not found"), http.StatusNotFound},
		{"ya decidida", moderationDomain.ErrTaskAlreadyDecided, http.StatusConflict},
		{"exito", nil, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			sender := &stubSender{err: tc.err}
			router := newRouter(sender)
			body := `{"decision":"approved"}`

			// Act
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/moderation-tasks/"+uuid.New().String()+"/decision", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestProvideDecision_InvalidTaskID(t *testing.T) {
	// Arrange
	sender := &stubSender{}
	router := newRouter(sender)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/moderation-tasks/not-a-uuid/decision", strings.NewReader(`{"decision":"approved"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, sender.got)
}

func TestReassignAdmin_HTTPContract(t *testing.T) {
	// Arrange
	sender := &stubSender{}
	router := newRouter(sender)
	taskID := uuid.New()
	adminID := uuid.New()
	body := `{"admin_id":"` + adminID.String() + `"}`

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/moderation-tasks/"+taskID.String()+"/admin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, w.Code)
	cmd, ok := sender.got.(application.ReassignAdmin)
	require.True(t, ok)
	assert.Equal(t, taskID, cmd.TaskID)
	assert.Equal(t, adminID, cmd.AdminID)
}

func TestLoadMyTasks_HTTPContract(t *testing.T) {
	// Arrange
	sender := &stubSender{result: []application.TaskReadModel{}}
	router := newRouter(sender)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/moderation-tasks/my-tasks?limit=5&offset=10", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	query, ok := sender.got.(application.LoadMyTasks)
	require.True(t, ok)
	assert.Equal(t, 5, query.Pagination.Limit)
	assert.Equal(t, 10, query.Pagination.Offset)
}
