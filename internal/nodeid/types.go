// internal/nodeid/types.go
package nodeid

// Ref addresses one pin of one node, written "node.Pin" in graph assets.
type Ref struct {
	Node string
	Pin  string
}

// String serializes the Ref into its canonical "node.Pin" form.
func (r Ref) String() string {
	if r.Node == "" && r.Pin == "" {
		return ""
	}
	return r.Node + "." + r.Pin
}
