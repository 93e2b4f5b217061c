package hclasset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/fsutil"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL graph asset loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

type parsedFile struct {
	name string
	root fileRoot
}

// Load parses every .hcl file among paths and merges them into one model.
// The graph name comes from a `graph` block, or from the first file name.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	parsed := make([]parsedFile, 0, len(files))
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		pf, err := decode(file, hclFile)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pf)
	}

	model, err := build(ctx, parsed)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "graph", model.Name, "nodes", len(model.Nodes), "connections", len(model.Connections))
	return model, nil
}

// ParseSource parses a single in-memory HCL document. filename names the
// source in diagnostics and serves as the fallback graph name.
func (l *Loader) ParseSource(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	pf, err := decode(filename, hclFile)
	if err != nil {
		return nil, err
	}
	return build(ctx, []parsedFile{pf})
}

func decode(name string, f *hcl.File) (parsedFile, error) {
	pf := parsedFile{name: name}
	if diags := gohcl.DecodeBody(f.Body, nil, &pf.root); diags.HasErrors() {
		return pf, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}
	return pf, nil
}

// build merges decoded files into a model. Properties are evaluated only
// after every graph block was seen, so `graph.name` is stable.
func build(ctx context.Context, files []parsedFile) (*config.Model, error) {
	model := &config.Model{}
	for _, pf := range files {
		for _, g := range pf.root.Graphs {
			if model.Name == "" {
				model.Name = g.Name
			}
			model.Entry = append(model.Entry, g.Entry...)
		}
		model.Sources = append(model.Sources, pf.name)
	}
	if model.Name == "" && len(files) > 0 {
		base := filepath.Base(files[0].name)
		model.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	evalCtx := newEvalContext(ctx, model.Name)
	for _, pf := range files {
		for _, nb := range pf.root.Nodes {
			n, err := translateNode(ctx, nb, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", pf.name, err)
			}
			model.Nodes = append(model.Nodes, n)
		}
		for _, cb := range pf.root.Connections {
			c, err := translateConnection(cb)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", pf.name, err)
			}
			model.Connections = append(model.Connections, c)
		}
	}
	return model, nil
}
