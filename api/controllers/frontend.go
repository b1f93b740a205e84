package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/palengkeproph/palengkeproph-backend/api/responses"
	"github.com/palengkeproph/palengkeproph-backend/pkg/config"
	pkgerrors "github.com/palengkeproph/palengkeproph-backend/pkg/errors"
	"github.com/palengkeproph/palengkeproph-backend/pkg/logger"
)

// Frontend serves the compiled single-page app. Paths that match a real file
// under the build directory are served as-is; everything else falls back to
// index.html so the client router can resolve the route. Unmatched /api paths
// never reach the fallback and get a JSON 404 instead.
func Frontend(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	buildDir := cfg.Frontend.BuildDir
	index := filepath.Join(buildDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not found."))
			return
		}

		rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
		candidate := filepath.Join(buildDir, rel)

		if rel != "" && isRegularFile(candidate) {
			http.ServeFile(w, r, candidate)
			return
		}

		if !isRegularFile(index) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "Frontend build not found."))
			return
		}
		http.ServeFile(w, r, index)
	}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
