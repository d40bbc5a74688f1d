package syntax

// EventKind discriminates the variant carried by an Event.
type EventKind int

const (
	EnterMojomFile EventKind = iota
	LeaveMojomFile
	EnterInterface
	LeaveInterface
	EnterStruct
	LeaveStruct
	VisitModule
	VisitImport
	VisitMethod
	VisitUnion
	VisitEnum
	VisitConst
	VisitStructField
)

// Event is one step of a preorder traversal. Exactly one pointer field is
// non-nil, matching Kind. Interface and Struct are the only container
// declarations; every other declaration is a leaf and produces a single
// event rather than a paired Enter/Leave.
type Event struct {
	Kind EventKind

	MojomFile   *MojomFile
	Interface   *Interface
	Struct      *Struct
	Module      *Module
	Import      *Import
	Method      *Method
	Union       *Union
	Enum        *Enum
	Const       *Const
	StructField *StructField
}

type frameKind int

const (
	frameMojomFile frameKind = iota
	frameInterface
	frameStruct
)

type frame struct {
	kind    frameKind
	entered bool
	pos     int

	file  *MojomFile
	iface *Interface
	strct *Struct
}

// Preorder is a restartable forward iterator over a parsed file's
// declaration tree, driven by an explicit work-stack rather than recursion
// so traversal depth never grows the Go call stack.
type Preorder struct {
	stack []frame
}

// NewPreorder starts a preorder traversal of file.
func NewPreorder(file *MojomFile) *Preorder {
	return &Preorder{stack: []frame{{kind: frameMojomFile, file: file}}}
}

// Next returns the next event in source order, or ok=false once the
// traversal is exhausted.
func (p *Preorder) Next() (Event, bool) {
	if len(p.stack) == 0 {
		return Event{}, false
	}
	i := len(p.stack) - 1
	if !p.stack[i].entered {
		p.stack[i].entered = true
		return p.enterEvent(p.stack[i]), true
	}
	switch p.stack[i].kind {
	case frameMojomFile:
		return p.stepMojomFile(i)
	case frameInterface:
		return p.stepInterface(i)
	case frameStruct:
		return p.stepStruct(i)
	default:
		unreachable("preorder: unknown frame kind")
		return Event{}, false
	}
}

func (p *Preorder) enterEvent(f frame) Event {
	switch f.kind {
	case frameMojomFile:
		return Event{Kind: EnterMojomFile, MojomFile: f.file}
	case frameInterface:
		return Event{Kind: EnterInterface, Interface: f.iface}
	case frameStruct:
		return Event{Kind: EnterStruct, Struct: f.strct}
	default:
		unreachable("preorder: unknown frame kind")
		return Event{}
	}
}

func (p *Preorder) stepMojomFile(i int) (Event, bool) {
	f := p.stack[i].file
	pos := p.stack[i].pos
	if pos >= len(f.Stmts) {
		p.stack = p.stack[:i]
		return Event{Kind: LeaveMojomFile, MojomFile: f}, true
	}
	p.stack[i].pos = pos + 1
	st := f.Stmts[pos]
	switch {
	case st.Module != nil:
		return Event{Kind: VisitModule, Module: st.Module}, true
	case st.Import != nil:
		return Event{Kind: VisitImport, Import: st.Import}, true
	case st.Interface != nil:
		p.stack = append(p.stack, frame{kind: frameInterface, iface: st.Interface, entered: true})
		return Event{Kind: EnterInterface, Interface: st.Interface}, true
	case st.Struct != nil:
		p.stack = append(p.stack, frame{kind: frameStruct, strct: st.Struct, entered: true})
		return Event{Kind: EnterStruct, Struct: st.Struct}, true
	case st.Union != nil:
		return Event{Kind: VisitUnion, Union: st.Union}, true
	case st.Enum != nil:
		return Event{Kind: VisitEnum, Enum: st.Enum}, true
	case st.Const != nil:
		return Event{Kind: VisitConst, Const: st.Const}, true
	default:
		unreachable("statement with no variant set")
		return Event{}, false
	}
}

func (p *Preorder) stepInterface(i int) (Event, bool) {
	iface := p.stack[i].iface
	pos := p.stack[i].pos
	if pos >= len(iface.Members) {
		p.stack = p.stack[:i]
		return Event{Kind: LeaveInterface, Interface: iface}, true
	}
	p.stack[i].pos = pos + 1
	m := iface.Members[pos]
	switch {
	case m.Const != nil:
		return Event{Kind: VisitConst, Const: m.Const}, true
	case m.Enum != nil:
		return Event{Kind: VisitEnum, Enum: m.Enum}, true
	case m.Method != nil:
		return Event{Kind: VisitMethod, Method: m.Method}, true
	default:
		unreachable("interface member with no variant set")
		return Event{}, false
	}
}

func (p *Preorder) stepStruct(i int) (Event, bool) {
	s := p.stack[i].strct
	pos := p.stack[i].pos
	if pos >= len(s.Members) {
		p.stack = p.stack[:i]
		return Event{Kind: LeaveStruct, Struct: s}, true
	}
	p.stack[i].pos = pos + 1
	m := s.Members[pos]
	switch {
	case m.Const != nil:
		return Event{Kind: VisitConst, Const: m.Const}, true
	case m.Enum != nil:
		return Event{Kind: VisitEnum, Enum: m.Enum}, true
	case m.Field != nil:
		return Event{Kind: VisitStructField, StructField: m.Field}, true
	default:
		unreachable("struct member with no variant set")
		return Event{}, false
	}
}
