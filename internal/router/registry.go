package router

import "github.com/gin-gonic/gin"

// Registry collects the feature modules (auth, cards, uploads, debug) and
// mounts their routes under the shared /api group.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Add queues a module for registration.
func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll registers every queued module's routes on the API group.
// Called once after all modules are added.
func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
