package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Empty(t, r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("routing", "/products")
	r.Register(group)

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	t.Run("mounts directly under /api by default", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)

		group := NewDomainGroup("system", "/system")
		group.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		r.Register(group)
		r.Setup()

		req := httptest.NewRequest("GET", "/api/system/ping", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("honors an explicit version prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine, WithAPIVersion("v2"))

		group := NewDomainGroup("system", "/system")
		group.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		r.Register(group)
		r.Setup()

		req := httptest.NewRequest("GET", "/api/v2/system/ping", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("routing", "/products")
		assert.Equal(t, "routing", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("registers GET route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("subscriptions", "/subscriptions")
		g.GET("/:subscriptionId/models", func(c *gin.Context) {
			c.String(http.StatusOK, "models")
		})

		api := engine.Group("/api")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/subscriptions/sub-1/models", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("registers POST route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("routing", "/products")
		g.POST("/:product/deployments/:deployment/train", func(c *gin.Context) {
			c.String(http.StatusAccepted, "accepted")
		})

		api := engine.Group("/api")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("POST", "/api/products/sentiment/deployments/eu/train", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("registers PUT route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.PUT("/items/:id", func(c *gin.Context) {
			c.String(http.StatusOK, "updated")
		})

		api := engine.Group("/api")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("PUT", "/api/test/items/123", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("registers DELETE route", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.DELETE("/items/:id", func(c *gin.Context) {
			c.String(http.StatusNoContent, "")
		})

		api := engine.Group("/api")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("DELETE", "/api/test/items/123", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("routing", "/products")

		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})

		g.GET("/list", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		api := engine.Group("/api")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/products/list", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("subscriptions", "/subscriptions/:subscriptionId")

		operations := g.Group("operations", "/operations")
		operations.GET("/training", func(c *gin.Context) {
			c.String(http.StatusOK, "training runs")
		})

		models := g.Group("models", "/models")
		models.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "model list")
		})

		api := engine.Group("/api")
		g.RegisterRoutes(api)

		req1 := httptest.NewRequest("GET", "/api/subscriptions/sub-1/operations/training", nil)
		w1 := httptest.NewRecorder()
		engine.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, "training runs", w1.Body.String())

		req2 := httptest.NewRequest("GET", "/api/subscriptions/sub-1/models", nil)
		w2 := httptest.NewRecorder()
		engine.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, "model list", w2.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	routing := NewDomainGroup("routing", "/products")
	routing.GET("/list", func(c *gin.Context) {
		c.String(http.StatusOK, "products")
	})

	system := NewDomainGroup("system", "/system")
	system.GET("/info", func(c *gin.Context) {
		c.String(http.StatusOK, "info")
	})

	r.Register(routing).Register(system)
	r.Setup()

	req1 := httptest.NewRequest("GET", "/api/products/list", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "products", w1.Body.String())

	req2 := httptest.NewRequest("GET", "/api/system/info", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "info", w2.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("test", "/test")
	g.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") }).
		PUT("/c", func(c *gin.Context) { c.String(http.StatusOK, "c") })

	r.Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/test/a"},
		{"POST", "/api/test/b"},
		{"PUT", "/api/test/c"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Route %s %s should work", tt.method, tt.path)
	}
}
