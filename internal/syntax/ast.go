package syntax

// Range is a half-open byte range into the original source text. Every
// named entity in the tree carries one of these instead of an owned
// string; callers slice the source to recover the text.
type Range struct {
	Start int
	End   int
}

// Text returns the slice of src the range denotes.
func (r Range) Text(src string) string {
	return src[r.Start:r.End]
}

// MojomFile is the root of a parsed document: an ordered sequence of
// top-level statements.
type MojomFile struct {
	Stmts []Statement
}

// Statement is a tagged union over the top-level declaration forms. Exactly
// one of the fields is non-nil.
type Statement struct {
	Module    *Module
	Import    *Import
	Interface *Interface
	Struct    *Struct
	Union     *Union
	Enum      *Enum
	Const     *Const
}

// Module is a `module a.b.c;` statement.
type Module struct {
	Name Range
}

// Import is an `import "path/to/file.mojom";` statement. Path still
// includes the surrounding quotes; callers strip them.
type Import struct {
	Path Range
}

// Const is a `const Type kName = value;` declaration, valid at file,
// interface and struct scope.
type Const struct {
	Type  TypeSpec
	Name  Range
	Value Range
}

// EnumValue is one entry of an enum's value list, with an optional
// explicit numeric or identifier value.
type EnumValue struct {
	Name  Range
	Value *Range
}

// Enum is an `enum Name { ... };` declaration. A forward declaration
// (`enum Name;`) yields an empty Values slice.
type Enum struct {
	Name   Range
	Values []EnumValue
}

// StructField is one field of a struct body.
type StructField struct {
	Type    TypeSpec
	Name    Range
	Ordinal *Range
	Default *Range
}

// StructMember is a tagged union over the member kinds a struct body may
// contain: Const, Enum or Field.
type StructMember struct {
	Const *Const
	Enum  *Enum
	Field *StructField
}

// Struct is a `struct Name { ... };` declaration. A forward declaration
// (`[Native] struct Name;`) yields an empty Members slice.
type Struct struct {
	Name    Range
	Members []StructMember
}

// UnionField is one field of a union body.
type UnionField struct {
	Type    TypeSpec
	Name    Range
	Ordinal *Range
}

// Union is a `union Name { ... };` declaration.
type Union struct {
	Name   Range
	Fields []UnionField
}

// Parameter is one parameter of a method's argument list or response list.
type Parameter struct {
	Type    TypeSpec
	Name    Range
	Ordinal *Range
}

// Response is the `=> (params...)` portion of a method. A method without
// `=>` has a nil *Response; a method with `=> ()` has a non-nil Response
// with an empty Params slice.
type Response struct {
	Params []Parameter
}

// Method is one method of an interface body.
type Method struct {
	Name     Range
	Ordinal  *Range
	Params   []Parameter
	Response *Response
}

// InterfaceMember is a tagged union over the member kinds an interface
// body may contain: Const, Enum or Method.
type InterfaceMember struct {
	Const  *Const
	Enum   *Enum
	Method *Method
}

// Interface is an `interface Name { ... };` declaration.
type Interface struct {
	Name    Range
	Members []InterfaceMember
}
