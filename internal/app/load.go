package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/topicgraph/internal/config"
	"github.com/specialistvlad/topicgraph/internal/docload"
	"github.com/specialistvlad/topicgraph/internal/hcl"
	"github.com/specialistvlad/topicgraph/internal/topicmap"
	"github.com/specialistvlad/topicgraph/internal/topicparse"
)

// loaderFor picks the loader for an input path: directories and .hcl files
// are HCL topic documents, .json files are saved topic maps, anything else
// docload can read is parsed as a document.
func loaderFor(path string) (config.Loader, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to access input: %w", err)
	}
	if info.IsDir() {
		return hcl.NewLoader(), "hcl", nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), "hcl", nil
	case ".json":
		return topicmap.NewLoader(), "topicmap", nil
	}
	if docload.Supported(path) {
		return topicparse.NewLoader(), "document", nil
	}
	return nil, "", fmt.Errorf("%s: %w", path, docload.ErrUnsupportedFormat)
}

// load reads the configured input into the unified model.
func (app *App) load() (*config.Model, error) {
	logger := app.Logger()
	loader, kind := app.loader, "custom"
	if loader == nil {
		var err error
		loader, kind, err = loaderFor(app.config.InputPath)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("Loading topics...", "input", app.config.InputPath, "loader", kind)

	m, err := loader.Load(app.ctx, app.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	logger.Info("Topics loaded.", "topics", len(m.Topics), "relations", len(m.Relations), "sources", len(m.Sources))
	return m, nil
}
