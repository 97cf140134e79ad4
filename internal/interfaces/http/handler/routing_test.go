package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/application/routing"
	"github.com/modelserve/gateway/internal/domain/operation"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/interfaces/http/dto"
	"github.com/modelserve/gateway/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testModelID        = "a1111111111111111111111111111111"
	testOperationID    = "a2222222222222222222222222222222"
	testEndpointID     = "a3333333333333333333333333333333"
	testSubscriptionID = "7f4b0bb4-6f6a-4de4-a0d8-0a7d41cd3a1c"
	testUser           = "alice@example.com"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Predict(ctx context.Context, in routing.DispatchInput) (json.RawMessage, string, error) {
	args := m.Called(ctx, in)
	var body json.RawMessage
	if args.Get(0) != nil {
		body = args.Get(0).(json.RawMessage)
	}
	return body, args.String(1), args.Error(2)
}

func (m *MockDispatcher) Train(ctx context.Context, in routing.DispatchInput) (*operation.Receipt, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operation.Receipt), args.Error(1)
}

func (m *MockDispatcher) BatchInfer(ctx context.Context, in routing.DispatchInput, modelID string) (*operation.Receipt, error) {
	args := m.Called(ctx, in, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operation.Receipt), args.Error(1)
}

func (m *MockDispatcher) Deploy(ctx context.Context, in routing.DispatchInput, modelID string) (*operation.Receipt, error) {
	args := m.Called(ctx, in, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operation.Receipt), args.Error(1)
}

type MockCorrelator struct {
	mock.Mock
}

func (m *MockCorrelator) ListOperations(ctx context.Context, coord routing.Coordinate, t operation.Type) ([]operation.Record, error) {
	args := m.Called(ctx, coord, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]operation.Record), args.Error(1)
}

func (m *MockCorrelator) GetOperation(ctx context.Context, coord routing.Coordinate, t operation.Type, id string) ([]operation.Record, error) {
	args := m.Called(ctx, coord, t, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]operation.Record), args.Error(1)
}

func (m *MockCorrelator) ListModels(ctx context.Context, coord routing.Coordinate) ([]operation.Record, error) {
	args := m.Called(ctx, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]operation.Record), args.Error(1)
}

func (m *MockCorrelator) GetModel(ctx context.Context, coord routing.Coordinate, modelID string) (*operation.Record, error) {
	args := m.Called(ctx, coord, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operation.Record), args.Error(1)
}

func (m *MockCorrelator) ListEndpoints(ctx context.Context, coord routing.Coordinate) ([]operation.Record, error) {
	args := m.Called(ctx, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]operation.Record), args.Error(1)
}

func (m *MockCorrelator) GetEndpoint(ctx context.Context, coord routing.Coordinate, endpointID string) (*operation.Record, error) {
	args := m.Called(ctx, coord, endpointID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*operation.Record), args.Error(1)
}

func setupRoutingRouter(t *testing.T) (*gin.Engine, *MockDispatcher, *MockCorrelator) {
	t.Helper()
	middleware.SetupValidator()

	dispatcher := new(MockDispatcher)
	correlator := new(MockCorrelator)
	h := NewRoutingHandler(dispatcher, correlator)

	engine := gin.New()
	api := engine.Group("/api")
	h.RegisterRoutes(api)

	return engine, dispatcher, correlator
}

func dispatchBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"subscriptionId": testSubscriptionID,
		"userId":         testUser,
		"input":          map[string]string{"text": "great product"},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func expectedCoordinate() routing.Coordinate {
	return routing.Coordinate{
		ProductName:    "sentiment",
		DeploymentName: "eu",
		VersionName:    "v1",
		SubscriptionID: uuid.MustParse(testSubscriptionID),
		UserID:         testUser,
	}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRoutingHandlerPredict(t *testing.T) {
	t.Run("streams backend response with its content type", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("Predict", mock.Anything, mock.MatchedBy(func(in routing.DispatchInput) bool {
			return in.Coordinate == expectedCoordinate()
		})).Return(json.RawMessage(`{"sentiment":"positive"}`), "application/json; charset=utf-8", nil)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/predict?api-version=v1", dispatchBody(t))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"sentiment":"positive"}`, w.Body.String())
	})

	t.Run("defaults content type to JSON", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("Predict", mock.Anything, mock.Anything).
			Return(json.RawMessage(`{}`), "", nil)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/predict?api-version=v1", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("missing api-version is rejected before dispatch", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/predict", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		dispatcher.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("malformed subscription ID is rejected", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)

		body, _ := json.Marshal(map[string]any{
			"subscriptionId": "not-a-uuid",
			"userId":         testUser,
		})
		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/predict?api-version=v1", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		dispatcher.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
	})

	t.Run("backend failure maps to 502", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("Predict", mock.Anything, mock.Anything).
			Return(nil, "", shared.NewBackendError(`{"error":"scoring container down"}`))

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/predict?api-version=v1", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBackend, resp.Error.Code)
	})
}

func TestRoutingHandlerTrain(t *testing.T) {
	t.Run("accepts and returns the minted model ID", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("Train", mock.Anything, mock.MatchedBy(func(in routing.DispatchInput) bool {
			return in.Coordinate == expectedCoordinate()
		})).Return(&operation.Receipt{ModelID: testModelID}, nil)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/train?api-version=v1", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, testModelID, data["modelId"])
	})

	t.Run("unknown coordinate maps to 404", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("Train", mock.Anything, mock.Anything).
			Return(nil, shared.NewNotFound("product"))

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/train?api-version=v1", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("foreign subscription maps to 403", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("Train", mock.Anything, mock.Anything).
			Return(nil, shared.NewForbidden("subscription does not belong to caller"))

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/train?api-version=v1", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRoutingHandlerBatchInfer(t *testing.T) {
	t.Run("default model", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("BatchInfer", mock.Anything, mock.Anything, "").
			Return(&operation.Receipt{OperationID: testOperationID}, nil)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/batchinference?api-version=v1", dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, testOperationID, data["operationId"])
	})

	t.Run("specific model", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)
		dispatcher.On("BatchInfer", mock.Anything, mock.Anything, testModelID).
			Return(&operation.Receipt{OperationID: testOperationID}, nil)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/models/"+testModelID+"/batchinference?api-version=v1",
			dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		dispatcher.AssertExpectations(t)
	})

	t.Run("rejects malformed model ID in path", func(t *testing.T) {
		engine, dispatcher, _ := setupRoutingRouter(t)

		req := httptest.NewRequest("POST",
			"/api/products/sentiment/deployments/eu/models/not-hex/batchinference?api-version=v1",
			dispatchBody(t))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		dispatcher.AssertNotCalled(t, "BatchInfer", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRoutingHandlerDeploy(t *testing.T) {
	engine, dispatcher, _ := setupRoutingRouter(t)
	dispatcher.On("Deploy", mock.Anything, mock.Anything, testModelID).
		Return(&operation.Receipt{EndpointID: testEndpointID}, nil)

	req := httptest.NewRequest("POST",
		"/api/products/sentiment/deployments/eu/models/"+testModelID+"/deploy?api-version=v1",
		dispatchBody(t))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, testEndpointID, data["endpointId"])
}

func queryPath(suffix string) string {
	return "/api/products/sentiment/deployments/eu/subscriptions/" + testSubscriptionID +
		suffix + "?api-version=v1&userid=" + "alice%40example.com"
}

func TestRoutingHandlerListOperations(t *testing.T) {
	tests := []struct {
		name string
		path string
		typ  operation.Type
	}{
		{"training", "/operations/training", operation.TypeTraining},
		{"inference", "/operations/inference", operation.TypeInference},
		{"deployment", "/operations/deployment", operation.TypeDeployment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, correlator := setupRoutingRouter(t)
			records := []operation.Record{{OperationType: string(tt.typ), Status: "Completed"}}
			correlator.On("ListOperations", mock.Anything, expectedCoordinate(), tt.typ).
				Return(records, nil)

			req := httptest.NewRequest("GET", queryPath(tt.path), nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			correlator.AssertExpectations(t)
		})
	}

	t.Run("inference listing also accepts POST", func(t *testing.T) {
		engine, _, correlator := setupRoutingRouter(t)
		correlator.On("ListOperations", mock.Anything, expectedCoordinate(), operation.TypeInference).
			Return([]operation.Record{}, nil)

		req := httptest.NewRequest("POST", queryPath("/operations/inference"), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing userid is rejected", func(t *testing.T) {
		engine, _, correlator := setupRoutingRouter(t)

		req := httptest.NewRequest("GET",
			"/api/products/sentiment/deployments/eu/subscriptions/"+testSubscriptionID+
				"/operations/training?api-version=v1", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		correlator.AssertNotCalled(t, "ListOperations", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed subscription path segment is rejected", func(t *testing.T) {
		engine, _, correlator := setupRoutingRouter(t)

		req := httptest.NewRequest("GET",
			"/api/products/sentiment/deployments/eu/subscriptions/nope/operations/training?api-version=v1&userid=u",
			nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		correlator.AssertNotCalled(t, "ListOperations", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRoutingHandlerGetOperation(t *testing.T) {
	engine, _, correlator := setupRoutingRouter(t)
	records := []operation.Record{{ModelID: testModelID, OperationType: "training", Status: "Running"}}
	correlator.On("GetOperation", mock.Anything, expectedCoordinate(), operation.TypeTraining, testModelID).
		Return(records, nil)

	req := httptest.NewRequest("GET", queryPath("/operations/training/"+testModelID), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	correlator.AssertExpectations(t)
}

func TestRoutingHandlerModels(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		engine, _, correlator := setupRoutingRouter(t)
		correlator.On("ListModels", mock.Anything, expectedCoordinate()).
			Return([]operation.Record{{ModelID: testModelID}}, nil)

		req := httptest.NewRequest("GET", queryPath("/models"), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("get missing model maps to 404", func(t *testing.T) {
		engine, _, correlator := setupRoutingRouter(t)
		correlator.On("GetModel", mock.Anything, expectedCoordinate(), testModelID).
			Return(nil, shared.NewNotFound("model"))

		req := httptest.NewRequest("GET", queryPath("/models/"+testModelID), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoutingHandlerEndpoints(t *testing.T) {
	engine, _, correlator := setupRoutingRouter(t)
	record := &operation.Record{
		EndpointID: testEndpointID,
		Status:     "Healthy",
		ScoringURL: "https://scoring.example.com/score",
	}
	correlator.On("GetEndpoint", mock.Anything, expectedCoordinate(), testEndpointID).
		Return(record, nil)

	req := httptest.NewRequest("GET", queryPath("/endpoints/"+testEndpointID), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "https://scoring.example.com/score", data["scoringUrl"])
}
