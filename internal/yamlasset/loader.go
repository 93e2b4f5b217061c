// Package yamlasset loads graph assets written in YAML. The document shape
// mirrors the HCL format:
//
//	graph: quest
//	entry: [start]
//	nodes:
//	  - name: gate
//	    type: Branch
//	    addons:
//	      - name: ready
//	        type: Constant
//	        properties: {value: true}
//	connections:
//	  - {from: start.Out, to: gate.Check}
package yamlasset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/fsutil"
	"github.com/specialistvlad/flowgridgo/internal/nodeid"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type document struct {
	Graph       string          `yaml:"graph"`
	Entry       []string        `yaml:"entry"`
	Nodes       []nodeDoc       `yaml:"nodes"`
	Connections []connectionDoc `yaml:"connections"`
}

type nodeDoc struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	ID         string         `yaml:"id,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	AddOns     []nodeDoc      `yaml:"addons,omitempty"`
}

type connectionDoc struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML graph asset loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads every YAML file among paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := fsutil.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		m, err := l.ParseSource(ctx, data, file)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	logger.Debug("YAML loading complete.", "graph", model.Name, "nodes", len(model.Nodes), "connections", len(model.Connections))
	return model, nil
}

// ParseSource parses one YAML document. Unknown keys are rejected.
func (l *Loader) ParseSource(_ context.Context, src []byte, filename string) (*config.Model, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	model := &config.Model{Name: doc.Graph, Entry: doc.Entry, Sources: []string{filename}}
	if model.Name == "" {
		base := filepath.Base(filename)
		model.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, nd := range doc.Nodes {
		n, err := translateNode(nd)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", filename, err)
		}
		model.Nodes = append(model.Nodes, n)
	}
	for _, cd := range doc.Connections {
		from, err := nodeid.Parse(cd.From)
		if err != nil {
			return nil, fmt.Errorf("in %s: connection from: %w", filename, err)
		}
		to, err := nodeid.Parse(cd.To)
		if err != nil {
			return nil, fmt.Errorf("in %s: connection to: %w", filename, err)
		}
		model.Connections = append(model.Connections, &config.Connection{From: from, To: to})
	}
	return model, nil
}

func translateNode(nd nodeDoc) (*config.Node, error) {
	props := cty.EmptyObjectVal
	if len(nd.Properties) > 0 {
		v, err := nodetype.FromGo(nd.Properties)
		if err != nil {
			return nil, fmt.Errorf("node '%s': invalid properties: %w", nd.Name, err)
		}
		props = v
	}
	n := &config.Node{Name: nd.Name, Type: nd.Type, ID: nd.ID, Properties: props}
	for _, ad := range nd.AddOns {
		child, err := translateNode(ad)
		if err != nil {
			return nil, err
		}
		n.AddOns = append(n.AddOns, child)
	}
	return n, nil
}
