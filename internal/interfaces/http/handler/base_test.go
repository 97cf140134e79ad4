package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context string",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set(RequestIDKey, "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			id := getRequestID(c)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	data := map[string]string{"key": "value"}
	h.Success(c, data)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestBaseHandlerAccepted(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Accepted(c, map[string]string{"modelId": "a0000000000000000000000000000000"})

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestBaseHandlerBadRequest(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", nil)

	h.BadRequest(c, "malformed body")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "malformed body", resp.Error.Message)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.NewNotFound("product"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "forbidden",
			err:            shared.NewForbidden("subscription does not belong to caller"),
			expectedStatus: http.StatusForbidden,
			expectedCode:   dto.ErrCodeForbidden,
		},
		{
			name:           "upstream auth failure",
			err:            shared.NewAuthError("token exchange rejected"),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeAuthUpstream,
		},
		{
			name:           "backend error",
			err:            shared.NewBackendError(`{"error":"quota exceeded"}`),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeBackend,
		},
		{
			name:           "backend protocol violation",
			err:            shared.NewBackendProtocolError("missing value envelope"),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   dto.ErrCodeBackendProtocol,
		},
		{
			name:           "unknown error hides detail",
			err:            errors.New("pq: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			err := json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}

	t.Run("unknown error does not leak message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		h.HandleError(c, errors.New("sensitive internal detail"))

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotContains(t, resp.Error.Message, "sensitive")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		h.HandleError(c, nil)

		assert.Empty(t, w.Body.String())
	})

	t.Run("request ID propagates into the error payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Set(RequestIDKey, "req-42")

		h.HandleError(c, shared.NewNotFound("model"))

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "req-42", resp.Error.RequestID)
	})
}

func TestBaseHandlerValidationError(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/", nil)

	h.ValidationError(c, []dto.ValidationDetail{
		{Field: "subscriptionId", Message: "subscriptionId must be a valid UUID"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "subscriptionId", resp.Error.Details[0].Field)
}
