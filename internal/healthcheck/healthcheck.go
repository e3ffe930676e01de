package healthcheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/l3aro/go-valueset/internal/config"
	"github.com/l3aro/go-valueset/pkg/cache"
	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/runner"
)

// ComponentStatus represents the health status of a single component.
type ComponentStatus struct {
	Name   string
	Detail string
	Status string // "ready", "disabled", "error"
	Error  string
}

// HealthCheckResult contains the full health check output for display.
type HealthCheckResult struct {
	SavedPath      string
	SavedScope     string // "global", "project" or empty
	EffectivePath  string
	EffectiveScope string // "global", "project" or "defaults"
	Frontends      []ComponentStatus
	Cache          ComponentStatus
}

// HasError reports whether any component failed its check.
func (r *HealthCheckResult) HasError() bool {
	if r.Cache.Status == "error" {
		return true
	}
	return slices.ContainsFunc(r.Frontends, func(s ComponentStatus) bool { return s.Status == "error" })
}

// probes are small programs every frontend must analyze to x = [1].
var probes = map[frontend.Language]string{
	frontend.Java: "class Probe {\n    void probe() {\n        x = 1;\n    }\n}\n",
	frontend.Go:   "package probe\n\nfunc probe() {\n\tx := 1\n}\n",
}

// Check performs a health check against the given config.
// savedPath is where the user saved config (may be empty outside init).
// effectivePath is the config file actually in use (empty for defaults).
func Check(ctx context.Context, cfg *config.Config, savedPath string, effectivePath string) (*HealthCheckResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	result := &HealthCheckResult{
		SavedPath:      savedPath,
		SavedScope:     scopeFromPath(savedPath),
		EffectivePath:  effectivePath,
		EffectiveScope: scopeFromPath(effectivePath),
	}
	if effectivePath == "" {
		result.EffectiveScope = "defaults"
	}

	for _, lang := range frontend.Languages() {
		result.Frontends = append(result.Frontends, checkFrontend(ctx, frontend.Language(lang)))
	}
	result.Cache = checkCache(cfg)

	return result, nil
}

// scopeFromPath determines "global" or "project" scope from a config file path.
// Returns empty string if path is empty.
func scopeFromPath(path string) string {
	if path == "" {
		return ""
	}

	home, err := os.UserHomeDir()
	if err == nil {
		globalDir := filepath.Join(home, config.Dir)
		if strings.HasPrefix(path, globalDir) {
			return "global"
		}
	}

	return "project"
}

// checkFrontend runs the probe for lang through the whole pipeline.
func checkFrontend(ctx context.Context, lang frontend.Language) ComponentStatus {
	status := ComponentStatus{Name: string(lang)}

	src, ok := probes[lang]
	if !ok {
		status.Status = "ready"
		status.Detail = "no probe"
		return status
	}

	f, err := runner.New(runner.Options{Workers: 1}).AnalyzeSource(ctx, "probe", lang, []byte(src))
	if err != nil {
		status.Status = "error"
		status.Error = err.Error()
		return status
	}

	if len(f.SyntaxErrors) > 0 || len(f.Methods) != 1 || len(f.Methods[0].Variables) != 1 ||
		!slices.Equal(f.Methods[0].Variables[0].Values, []int32{1}) {
		status.Status = "error"
		status.Error = fmt.Sprintf("unexpected probe result: %+v", f.Methods)
		return status
	}

	status.Status = "ready"
	return status
}

// checkCache verifies the cache directory is writable and the persisted
// cache, if any, can be read.
func checkCache(cfg *config.Config) ComponentStatus {
	status := ComponentStatus{
		Name:   "cache",
		Detail: cfg.CacheFile(),
	}

	if !cfg.Cache {
		status.Status = "disabled"
		return status
	}

	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		status.Status = "error"
		status.Error = fmt.Sprintf("cannot create cache directory: %v", err)
		return status
	}

	tmp, err := os.CreateTemp(cfg.CacheDir, ".probe-*")
	if err != nil {
		status.Status = "error"
		status.Error = fmt.Sprintf("cache directory is not writable: %v", err)
		return status
	}
	tmp.Close()
	os.Remove(tmp.Name())

	c := cache.New(cache.Options{MaxEntries: cfg.CacheMaxEntries})
	if err := cache.LoadFromFile(c, cfg.CacheFile()); err != nil {
		status.Status = "error"
		status.Error = fmt.Sprintf("cannot read cache: %v", err)
		return status
	}

	status.Status = "ready"
	status.Detail = fmt.Sprintf("%s (%d entries)", cfg.CacheFile(), c.Len())
	return status
}
