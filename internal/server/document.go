package server

import "github.com/GoogleChromeLabs/mojom-language-support/internal/syntax"

// document is the analysis task's record of the currently open file, per
// §3's "Document record". It is owned exclusively by the analysis task;
// no other goroutine reads or mutates it.
type document struct {
	URI    string
	Text   string
	Tree   *syntax.MojomFile
	Module *syntax.Module
}

func (d *document) moduleName() (string, bool) {
	if d == nil || d.Module == nil {
		return "", false
	}
	return d.Module.Name.Text(d.Text), true
}
