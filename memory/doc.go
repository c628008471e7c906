// Package memory provides the append-only conversation transcript owned by
// each agent instance.
package memory
