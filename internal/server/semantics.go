package server

import (
	"fmt"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/syntax"
)

// semanticAnalysis is the result of checking a freshly parsed file: the
// single accepted module statement, if any, and the diagnostics produced
// along the way. Diagnostics here are the internal, byte-range form;
// lspRange translates them to wire positions against a specific text.
type semanticAnalysis struct {
	Module      *syntax.Module
	Diagnostics []internalDiagnostic
}

type internalDiagnostic struct {
	Range   syntax.Range
	Message string
}

// checkSemantics enforces the single-module rule (§4.I): the first Module
// statement is accepted, every subsequent one is diagnosed against its own
// name range and otherwise ignored. This is a single linear pass and the
// first-match behavior is deliberate — it must not become "last wins".
func checkSemantics(text string, file *syntax.MojomFile) semanticAnalysis {
	var analysis semanticAnalysis
	for _, stmt := range file.Stmts {
		if stmt.Module == nil {
			continue
		}
		if analysis.Module == nil {
			analysis.Module = stmt.Module
			continue
		}
		message := fmt.Sprintf(
			"Found more than one module statement: %s and %s",
			analysis.Module.Name.Text(text),
			stmt.Module.Name.Text(text),
		)
		analysis.Diagnostics = append(analysis.Diagnostics, internalDiagnostic{
			Range:   stmt.Module.Name,
			Message: message,
		})
	}
	return analysis
}

func toWireDiagnostic(text string, d internalDiagnostic) Diagnostic {
	return Diagnostic{
		Range:    lspRange(text, d.Range),
		Severity: DiagnosticSeverityError,
		Code:     DiagnosticCode,
		Source:   DiagnosticSource,
		Message:  d.Message,
	}
}
