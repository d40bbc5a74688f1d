package syntax

import "fmt"

// parser is the recursive-descent statement-level grammar. It lowers
// directly to the AST rather than building an intermediate concrete syntax
// tree: each production consumes its structural tokens (braces, commas,
// '=', '=>') explicitly and records only the ranges the data model needs.
type parser struct {
	toks []Token
	pos  int
}

func newParser(toks []Token) *parser {
	return &parser{toks: toks}
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k Kind) (Token, error) {
	t := p.peek()
	if t.Kind != k {
		return Token{}, newParseError(fmt.Sprintf("Expected %s but found %s", Human(k), Human(t.Kind)), t.Range)
	}
	return p.next(), nil
}

// parseTypeSpec delegates to the standalone type-spec sub-parser, sharing
// the same token slice (token ranges are absolute, so no translation is
// needed) and advancing past whatever it consumed.
func (p *parser) parseTypeSpec() (TypeSpec, error) {
	tp := newTypeParser(p.toks[p.pos:])
	spec, err := tp.parseTypeSpec()
	if err != nil {
		return TypeSpec{}, err
	}
	p.pos += tp.pos
	return spec, nil
}

// skipAttributeSection consumes an optional `[Attr, Attr=Value, ...]`
// prefix. Attributes are not retained in the AST; the server's semantic
// layer has no use for them yet.
func (p *parser) skipAttributeSection() error {
	if p.peek().Kind != LBRACK {
		return nil
	}
	p.next()
	if p.peek().Kind == RBRACK {
		p.next()
		return nil
	}
	for {
		if _, err := p.expect(IDENT); err != nil {
			return err
		}
		if p.peek().Kind == EQ {
			p.next()
			switch p.peek().Kind {
			case IDENT, NUMBER, STRING, TRUE, FALSE, DEFAULT:
				p.next()
			default:
				return newParseError(fmt.Sprintf("Expected attribute value but found %s", Human(p.peek().Kind)), p.peek().Range)
			}
		}
		if p.peek().Kind == COMMA {
			p.next()
			continue
		}
		break
	}
	_, err := p.expect(RBRACK)
	return err
}

// parseDottedIdent parses `a.b.c` and returns the range spanning all of it,
// used for module names and qualified value references.
func (p *parser) parseDottedIdent() (Range, error) {
	first, err := p.expect(IDENT)
	if err != nil {
		return Range{}, err
	}
	end := first.Range.End
	for p.peek().Kind == DOT {
		p.next()
		tok, err := p.expect(IDENT)
		if err != nil {
			return Range{}, err
		}
		end = tok.Range.End
	}
	return Range{Start: first.Range.Start, End: end}, nil
}

// parseValue parses the right-hand side of `=`: a literal or a (possibly
// qualified) identifier naming another const or enum value.
func (p *parser) parseValue() (Range, error) {
	switch p.peek().Kind {
	case NUMBER, STRING, TRUE, FALSE, DEFAULT:
		return p.next().Range, nil
	case IDENT:
		return p.parseDottedIdent()
	default:
		return Range{}, newParseError(fmt.Sprintf("Expected a value but found %s", Human(p.peek().Kind)), p.peek().Range)
	}
}

// parseOrdinal parses an optional `@N` ordinal, returning its range
// including the '@'.
func (p *parser) parseOrdinal() (*Range, error) {
	if p.peek().Kind != AT {
		return nil, nil
	}
	at := p.next()
	num, err := p.expect(NUMBER)
	if err != nil {
		return nil, err
	}
	r := Range{Start: at.Range.Start, End: num.Range.End}
	return &r, nil
}

func (p *parser) parseModule() (*Module, error) {
	p.next() // module
	name, err := p.parseDottedIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Module{Name: name}, nil
}

func (p *parser) parseImport() (*Import, error) {
	p.next() // import
	path, err := p.expect(STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Import{Path: path.Range}, nil
}

func (p *parser) parseConst() (*Const, error) {
	p.next() // const
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQ); err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Const{Type: typ, Name: name.Range, Value: value}, nil
}

func (p *parser) parseEnumValue() (EnumValue, error) {
	if err := p.skipAttributeSection(); err != nil {
		return EnumValue{}, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return EnumValue{}, err
	}
	var value *Range
	if p.peek().Kind == EQ {
		p.next()
		v, err := p.parseValue()
		if err != nil {
			return EnumValue{}, err
		}
		value = &v
	}
	return EnumValue{Name: name.Range, Value: value}, nil
}

// parseEnum handles both `enum Name;` (forward declaration) and
// `enum Name { ... };`, with trailing-comma-tolerant value lists.
func (p *parser) parseEnum() (*Enum, error) {
	p.next() // enum
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	var values []EnumValue
	if p.peek().Kind == LBRACE {
		p.next()
		for p.peek().Kind != RBRACE {
			v, err := p.parseEnumValue()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			if p.peek().Kind == COMMA {
				p.next()
				if p.peek().Kind == RBRACE {
					break
				}
				continue
			}
			break
		}
		if _, err := p.expect(RBRACE); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Enum{Name: name.Range, Values: values}, nil
}

func (p *parser) parseStructField() (*StructField, error) {
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	ordinal, err := p.parseOrdinal()
	if err != nil {
		return nil, err
	}
	var def *Range
	if p.peek().Kind == EQ {
		p.next()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		def = &v
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &StructField{Type: typ, Name: name.Range, Ordinal: ordinal, Default: def}, nil
}

func (p *parser) parseStructMember() (StructMember, error) {
	if err := p.skipAttributeSection(); err != nil {
		return StructMember{}, err
	}
	switch p.peek().Kind {
	case CONST:
		c, err := p.parseConst()
		if err != nil {
			return StructMember{}, err
		}
		return StructMember{Const: c}, nil
	case ENUM:
		e, err := p.parseEnum()
		if err != nil {
			return StructMember{}, err
		}
		return StructMember{Enum: e}, nil
	default:
		f, err := p.parseStructField()
		if err != nil {
			return StructMember{}, err
		}
		return StructMember{Field: f}, nil
	}
}

// parseStruct handles both `[Native] struct Name;` (forward declaration,
// its attribute already consumed by the caller) and `struct Name { ... };`.
func (p *parser) parseStruct() (*Struct, error) {
	p.next() // struct
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	var members []StructMember
	if p.peek().Kind == LBRACE {
		p.next()
		for p.peek().Kind != RBRACE {
			m, err := p.parseStructMember()
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		p.next() // }
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Struct{Name: name.Range, Members: members}, nil
}

func (p *parser) parseUnionField() (UnionField, error) {
	if err := p.skipAttributeSection(); err != nil {
		return UnionField{}, err
	}
	typ, err := p.parseTypeSpec()
	if err != nil {
		return UnionField{}, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return UnionField{}, err
	}
	ordinal, err := p.parseOrdinal()
	if err != nil {
		return UnionField{}, err
	}
	if _, err := p.expect(SEMI); err != nil {
		return UnionField{}, err
	}
	return UnionField{Type: typ, Name: name.Range, Ordinal: ordinal}, nil
}

func (p *parser) parseUnion() (*Union, error) {
	p.next() // union
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	var fields []UnionField
	for p.peek().Kind != RBRACE {
		f, err := p.parseUnionField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	p.next() // }
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Union{Name: name.Range, Fields: fields}, nil
}

func (p *parser) parseParameter() (Parameter, error) {
	if err := p.skipAttributeSection(); err != nil {
		return Parameter{}, err
	}
	typ, err := p.parseTypeSpec()
	if err != nil {
		return Parameter{}, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return Parameter{}, err
	}
	ordinal, err := p.parseOrdinal()
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Type: typ, Name: name.Range, Ordinal: ordinal}, nil
}

// parseParameterList parses the comma-separated contents of a `(...)`
// parameter list, tolerating a trailing comma before the closing paren.
func (p *parser) parseParameterList() ([]Parameter, error) {
	var params []Parameter
	if p.peek().Kind == RPAREN {
		return params, nil
	}
	for {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.peek().Kind == COMMA {
			p.next()
			if p.peek().Kind == RPAREN {
				break
			}
			continue
		}
		break
	}
	return params, nil
}

func (p *parser) parseResponse() (*Response, error) {
	p.next() // =>
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return &Response{Params: params}, nil
}

func (p *parser) parseMethod() (*Method, error) {
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	ordinal, err := p.parseOrdinal()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	var resp *Response
	if p.peek().Kind == ARROW {
		resp, err = p.parseResponse()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Method{Name: name.Range, Ordinal: ordinal, Params: params, Response: resp}, nil
}

func (p *parser) parseInterfaceMember() (InterfaceMember, error) {
	if err := p.skipAttributeSection(); err != nil {
		return InterfaceMember{}, err
	}
	switch p.peek().Kind {
	case CONST:
		c, err := p.parseConst()
		if err != nil {
			return InterfaceMember{}, err
		}
		return InterfaceMember{Const: c}, nil
	case ENUM:
		e, err := p.parseEnum()
		if err != nil {
			return InterfaceMember{}, err
		}
		return InterfaceMember{Enum: e}, nil
	default:
		m, err := p.parseMethod()
		if err != nil {
			return InterfaceMember{}, err
		}
		return InterfaceMember{Method: m}, nil
	}
}

func (p *parser) parseInterface() (*Interface, error) {
	p.next() // interface
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	var members []InterfaceMember
	for p.peek().Kind != RBRACE {
		m, err := p.parseInterfaceMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	p.next() // }
	if _, err := p.expect(SEMI); err != nil {
		return nil, err
	}
	return &Interface{Name: name.Range, Members: members}, nil
}

// parseStatement dispatches on the first structural keyword after an
// optional attribute section. Forward declarations of enum and struct
// ("enum Name;", "[Native] struct Name;") fall out of parseEnum/parseStruct
// naturally since both treat the body block as optional.
func (p *parser) parseStatement() (Statement, error) {
	if err := p.skipAttributeSection(); err != nil {
		return Statement{}, err
	}
	switch p.peek().Kind {
	case MODULE:
		m, err := p.parseModule()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Module: m}, nil
	case IMPORT:
		im, err := p.parseImport()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Import: im}, nil
	case CONST:
		c, err := p.parseConst()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Const: c}, nil
	case ENUM:
		e, err := p.parseEnum()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Enum: e}, nil
	case STRUCT:
		s, err := p.parseStruct()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Struct: s}, nil
	case UNION:
		u, err := p.parseUnion()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Union: u}, nil
	case INTERFACE:
		i, err := p.parseInterface()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Interface: i}, nil
	default:
		return Statement{}, newParseError(fmt.Sprintf("Expected a declaration but found %s", Human(p.peek().Kind)), p.peek().Range)
	}
}

// Parse lexes and parses a complete Mojom source file into its AST. Parsing
// stops at the first syntax error; there is no error recovery.
func Parse(text string) (*MojomFile, error) {
	toks, err := lexAll(text)
	if err != nil {
		return nil, err
	}
	p := newParser(toks)
	var stmts []Statement
	for p.peek().Kind != EOF {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return &MojomFile{Stmts: stmts}, nil
}
