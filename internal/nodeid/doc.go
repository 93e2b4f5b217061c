// internal/nodeid/doc.go

/*
Package nodeid parses and validates the identifiers used in graph assets:
node names and pin references of the form `node.Pin`.

Node names may contain letters, digits, `_` and `-`. Pin names follow the
same rule; they are compared exactly, without case folding.
*/
package nodeid
