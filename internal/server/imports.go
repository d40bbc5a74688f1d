package server

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/logging"
	"github.com/GoogleChromeLabs/mojom-language-support/internal/syntax"
)

// importDefinition is one qualified name contributed by an imported file,
// already converted to wire-range form against that file's own text.
type importDefinition struct {
	Ident string
	Range Range
}

type importEntry struct {
	URI         string
	ModuleName  string
	HasModule   bool
	Definitions []importDefinition
}

// importResult is success-or-error for one import statement. A failed
// import is kept, not discarded, so later lookups can skip it cleanly
// per §3's "Imported-file cache" invariant.
type importResult struct {
	entry *importEntry
	err   error
}

type importedFiles struct {
	results []importResult
}

// findDefinition scans every successfully parsed import's definitions,
// matching the bare qualified ident and, if the import declared a module,
// `module_name.qualified_ident`. First hit wins.
func (f *importedFiles) findDefinition(ident string) (Location, bool) {
	if f == nil {
		return Location{}, false
	}
	for _, r := range f.results {
		if r.err != nil || r.entry == nil {
			continue
		}
		for _, d := range r.entry.Definitions {
			if d.Ident == ident {
				return Location{URI: r.entry.URI, Range: d.Range}, true
			}
			if r.entry.HasModule && r.entry.ModuleName+"."+d.Ident == ident {
				return Location{URI: r.entry.URI, Range: d.Range}, true
			}
		}
	}
	return Location{}, false
}

// checkImports resolves every import statement in doc against rootPath,
// fully parses and traverses each one, and records success or error for
// every entry without discarding anything on failure.
func checkImports(rootPath string, doc *document) *importedFiles {
	var results []importResult
	if doc == nil || doc.Tree == nil {
		return &importedFiles{}
	}
	for _, stmt := range doc.Tree.Stmts {
		if stmt.Import == nil {
			continue
		}
		literal := stmt.Import.Path.Text(doc.Text)
		trimmed := strings.Trim(literal, `"`)
		fullPath := filepath.Join(rootPath, trimmed)
		entry, err := parseImported(fullPath)
		if err != nil {
			logging.Get(logging.CategoryImports).Debug("import unresolved",
				zap.String("path", fullPath), zap.Error(err))
		}
		results = append(results, importResult{entry: entry, err: err})
	}
	return &importedFiles{results: results}
}

// parseImported fully parses and semantically checks one imported file,
// lowering its top-level declarations into qualified definitions. Nested
// enums/consts inside an interface or struct are qualified by the
// enclosing name (e.g. "Iface.Enum"); file-scope declarations contribute
// their bare names; interfaces and structs contribute their own name as a
// leaf and additionally push their name for their children.
func parseImported(path string) (*importEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("import not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("reading import %s: %w", path, err)
	}
	text := string(data)

	tree, err := syntax.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("syntax error in import %s: %w", path, err)
	}
	analysis := checkSemantics(text, tree)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	uri := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	var pathStack []string
	var definitions []importDefinition
	addDefinition := func(nameRange syntax.Range) {
		name := nameRange.Text(text)
		pathStack = append(pathStack, name)
		ident := strings.Join(pathStack, ".")
		pathStack = pathStack[:len(pathStack)-1]
		definitions = append(definitions, importDefinition{Ident: ident, Range: lspRange(text, nameRange)})
	}

	p := syntax.NewPreorder(tree)
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case syntax.EnterInterface:
			addDefinition(ev.Interface.Name)
			pathStack = append(pathStack, ev.Interface.Name.Text(text))
		case syntax.LeaveInterface:
			pathStack = pathStack[:len(pathStack)-1]
		case syntax.EnterStruct:
			addDefinition(ev.Struct.Name)
			pathStack = append(pathStack, ev.Struct.Name.Text(text))
		case syntax.LeaveStruct:
			pathStack = pathStack[:len(pathStack)-1]
		case syntax.VisitUnion:
			addDefinition(ev.Union.Name)
		case syntax.VisitEnum:
			addDefinition(ev.Enum.Name)
		case syntax.VisitConst:
			addDefinition(ev.Const.Name)
		}
	}

	entry := &importEntry{URI: uri, Definitions: definitions}
	if analysis.Module != nil {
		entry.ModuleName = analysis.Module.Name.Text(text)
		entry.HasModule = true
	}
	return entry, nil
}
