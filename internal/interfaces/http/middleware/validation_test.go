package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/modelserve/gateway/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	// Verify the validator is configured
	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type TestStruct struct {
		SubscriptionID string `json:"subscriptionId" binding:"required,uuid"`
		UserID         string `json:"userId" binding:"required"`
	}

	// Setup validator
	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req TestStruct
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns validation errors for invalid input", func(t *testing.T) {
		body := strings.NewReader(`{"subscriptionId": "not-a-uuid"}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := make([]string, 0, len(resp.Error.Details))
		for _, d := range resp.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.Contains(t, fields, "subscriptionId")
		assert.Contains(t, fields, "userId")
	})

	t.Run("passes for valid input", func(t *testing.T) {
		body := strings.NewReader(`{"subscriptionId": "7f4b0bb4-6f6a-4de4-a0d8-0a7d41cd3a1c", "userId": "alice@example.com"}`)
		req := httptest.NewRequest("POST", "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOperationIDValidator(t *testing.T) {
	type TestStruct struct {
		ModelID string `json:"modelId" binding:"required,opid"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req TestStruct
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	tests := []struct {
		name     string
		modelID  string
		expected int
	}{
		{"accepts a minted identifier", "a" + strings.Repeat("0", 31), http.StatusOK},
		{"rejects wrong length", "a0ff", http.StatusBadRequest},
		{"rejects wrong first character", "b" + strings.Repeat("0", 31), http.StatusBadRequest},
		{"rejects non-hex characters", "a" + strings.Repeat("z", 31), http.StatusBadRequest},
		{"rejects uppercase hex", "a" + strings.Repeat("F", 31), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.NewReader(`{"modelId": "` + tt.modelID + `"}`)
			req := httptest.NewRequest("POST", "/test", body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestGetValidationMessage(t *testing.T) {
	type TestStruct struct {
		Required string `binding:"required"`
		UUID     string `binding:"omitempty,uuid"`
		OpID     string `binding:"omitempty,opid"`
	}

	SetupValidator()

	tests := []struct {
		field    string
		value    TestStruct
		expected string
	}{
		{"Required", TestStruct{UUID: "7f4b0bb4-6f6a-4de4-a0d8-0a7d41cd3a1c"}, "This field is required"},
		{"UUID", TestStruct{Required: "x", UUID: "nope"}, "Invalid UUID format"},
		{"OpID", TestStruct{Required: "x", OpID: "nope"}, "Invalid operation identifier format"},
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			err := v.Struct(tt.value)
			require.Error(t, err)

			validationErrors, ok := err.(validator.ValidationErrors)
			require.True(t, ok)

			found := false
			for _, e := range validationErrors {
				if e.StructField() == tt.field {
					assert.Equal(t, tt.expected, getValidationMessage(e))
					found = true
				}
			}
			assert.True(t, found, "no validation error for field %s", tt.field)
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-abc")
		HandleValidationError(c, assert.AnError)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "req-abc")
}
