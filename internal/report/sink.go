// Package report renders engine results for the command surface. The
// output sink is polymorphic over a small capability set — emit a full
// conflict report, emit a single-file report — with JSON and decorated-text
// implementations; a third variant, an interactive terminal dashboard, is an
// external collaborator this package does not implement.
package report

import "github.com/sqve/cradar/internal/engine"

// Sink is the capability every output destination for the engine's results
// implements.
type Sink interface {
	EmitReport(report *engine.ConflictReport) error
	EmitSingleFileReport(report *engine.SingleFileReport) error
}
