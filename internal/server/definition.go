package server

import (
	"strings"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/syntax"
)

// findDefinitionInTree walks doc's preorder traversal maintaining a path
// stack of enclosing Interface/Struct names, forming `path.join(".").name`
// for every EnterInterface/EnterStruct node and every Union, Enum and Const
// leaf, and returns the first range whose qualified name equals ident.
// Methods, struct fields, module and import statements are not matched.
func findDefinitionInTree(ident string, doc *document) (Location, bool) {
	if doc == nil || doc.Tree == nil {
		return Location{}, false
	}

	var path []string
	matchField := func(name syntax.Range) (Location, bool) {
		text := doc.Text[name.Start:name.End]
		qualified := joinQualified(path, text)
		if qualified != ident {
			return Location{}, false
		}
		return Location{URI: doc.URI, Range: lspRange(doc.Text, name)}, true
	}

	p := syntax.NewPreorder(doc.Tree)
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case syntax.EnterInterface:
			if loc, found := matchField(ev.Interface.Name); found {
				return loc, true
			}
			path = append(path, ev.Interface.Name.Text(doc.Text))
		case syntax.LeaveInterface:
			path = path[:len(path)-1]
		case syntax.EnterStruct:
			if loc, found := matchField(ev.Struct.Name); found {
				return loc, true
			}
			path = append(path, ev.Struct.Name.Text(doc.Text))
		case syntax.LeaveStruct:
			path = path[:len(path)-1]
		case syntax.VisitUnion:
			if loc, found := matchField(ev.Union.Name); found {
				return loc, true
			}
		case syntax.VisitEnum:
			if loc, found := matchField(ev.Enum.Name); found {
				return loc, true
			}
		case syntax.VisitConst:
			if loc, found := matchField(ev.Const.Name); found {
				return loc, true
			}
		}
	}
	return Location{}, false
}

func joinQualified(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}
