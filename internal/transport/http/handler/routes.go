package handler

import (
	"sort"

	"github.com/gin-gonic/gin"

	"petspotter/internal/transport/http/response"
)

type routeInfo struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

// RouteIndex lists every registered path with its methods.
type RouteIndex struct {
	engine *gin.Engine
}

func NewRouteIndex(engine *gin.Engine) *RouteIndex {
	return &RouteIndex{engine: engine}
}

func (h *RouteIndex) List(c *gin.Context) {
	byPath := make(map[string][]string)
	var paths []string
	for _, r := range h.engine.Routes() {
		if _, ok := byPath[r.Path]; !ok {
			paths = append(paths, r.Path)
		}
		byPath[r.Path] = append(byPath[r.Path], r.Method)
	}
	sort.Strings(paths)

	routes := make([]routeInfo, 0, len(paths))
	for _, p := range paths {
		methods := byPath[p]
		sort.Strings(methods)
		routes = append(routes, routeInfo{Path: p, Methods: methods})
	}
	response.OK(c, routes)
}
