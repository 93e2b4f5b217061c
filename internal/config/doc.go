// Package config defines the format-agnostic model of a graph asset and the
// Loader interface format packages implement.
//
// The Model is what the graph package compiles; the hclasset and yamlasset
// packages produce it from files.
package config
