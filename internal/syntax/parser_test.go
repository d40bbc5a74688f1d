package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModuleAndImport(t *testing.T) {
	src := `module test.mod;
import "other.mojom";`
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Stmts, 2)

	require.NotNil(t, file.Stmts[0].Module)
	assert.Equal(t, "test.mod", file.Stmts[0].Module.Name.Text(src))

	require.NotNil(t, file.Stmts[1].Import)
	assert.Equal(t, `"other.mojom"`, file.Stmts[1].Import.Path.Text(src))
}

func TestParseConst(t *testing.T) {
	src := `const string kName = "hello";`
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Stmts, 1)
	c := file.Stmts[0].Const
	require.NotNil(t, c)
	assert.Equal(t, "kName", c.Name.Text(src))
	assert.Equal(t, `"hello"`, c.Value.Text(src))
}

func TestParseEnumWithValuesAndTrailingComma(t *testing.T) {
	src := `enum Color {
		RED,
		GREEN = 5,
		BLUE,
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	e := file.Stmts[0].Enum
	require.NotNil(t, e)
	require.Len(t, e.Values, 3)
	assert.Equal(t, "RED", e.Values[0].Name.Text(src))
	require.NotNil(t, e.Values[1].Value)
	assert.Equal(t, "5", e.Values[1].Value.Text(src))
}

func TestParseForwardDeclaredEnum(t *testing.T) {
	src := `enum Color;`
	file, err := Parse(src)
	require.NoError(t, err)
	e := file.Stmts[0].Enum
	require.NotNil(t, e)
	assert.Empty(t, e.Values)
}

func TestParseForwardDeclaredNativeStruct(t *testing.T) {
	src := `[Native] struct Opaque;`
	file, err := Parse(src)
	require.NoError(t, err)
	s := file.Stmts[0].Struct
	require.NotNil(t, s)
	assert.Equal(t, "Opaque", s.Name.Text(src))
	assert.Empty(t, s.Members)
}

func TestParseStructWithFieldOrdinalAndDefault(t *testing.T) {
	src := `struct Point {
		int32 x@0;
		int32 y@1 = 42;
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	s := file.Stmts[0].Struct
	require.NotNil(t, s)
	require.Len(t, s.Members, 2)

	x := s.Members[0].Field
	require.NotNil(t, x)
	require.NotNil(t, x.Ordinal)
	assert.Equal(t, "@0", x.Ordinal.Text(src))
	assert.Nil(t, x.Default)

	y := s.Members[1].Field
	require.NotNil(t, y)
	require.NotNil(t, y.Default)
	assert.Equal(t, "42", y.Default.Text(src))
}

func TestParseStructFieldWithDefaultKeywordLiteral(t *testing.T) {
	src := `struct S {
		bool enabled = default;
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	s := file.Stmts[0].Struct
	require.NotNil(t, s)
	require.Len(t, s.Members, 1)

	f := s.Members[0].Field
	require.NotNil(t, f)
	require.NotNil(t, f.Default)
	assert.Equal(t, "default", f.Default.Text(src))
}

func TestParseConstWithDefaultKeywordLiteral(t *testing.T) {
	src := `const bool kFoo = default;`
	file, err := Parse(src)
	require.NoError(t, err)
	c := file.Stmts[0].Const
	require.NotNil(t, c)
	assert.Equal(t, "default", c.Value.Text(src))
}

func TestParseStructWithNestedConstAndEnum(t *testing.T) {
	src := `struct S {
		const int32 kX = 1;
		enum E { A, B };
		int32 field@0;
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	s := file.Stmts[0].Struct
	require.Len(t, s.Members, 3)
	assert.NotNil(t, s.Members[0].Const)
	assert.NotNil(t, s.Members[1].Enum)
	assert.NotNil(t, s.Members[2].Field)
}

func TestParseUnion(t *testing.T) {
	src := `union Value {
		int32 int_value@0;
		string string_value@1;
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	u := file.Stmts[0].Union
	require.NotNil(t, u)
	require.Len(t, u.Fields, 2)
	assert.Equal(t, "int_value", u.Fields[0].Name.Text(src))
}

func TestParseInterfaceWithMethodsAndResponse(t *testing.T) {
	src := `interface Greeter {
		Greet(string name) => (string reply);
		Ping() => ();
		Notify(string msg);
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	i := file.Stmts[0].Interface
	require.NotNil(t, i)
	require.Len(t, i.Members, 3)

	greet := i.Members[0].Method
	require.NotNil(t, greet)
	require.Len(t, greet.Params, 1)
	require.NotNil(t, greet.Response)
	require.Len(t, greet.Response.Params, 1)

	ping := i.Members[1].Method
	require.NotNil(t, ping.Response)
	assert.Empty(t, ping.Response.Params)

	notify := i.Members[2].Method
	assert.Nil(t, notify.Response)
}

func TestParseMethodWithOrdinalAndTrailingCommaParams(t *testing.T) {
	src := `interface I {
		M@3(int32 a, int32 b,) => ();
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	m := file.Stmts[0].Interface.Members[0].Method
	require.NotNil(t, m.Ordinal)
	assert.Equal(t, "@3", m.Ordinal.Text(src))
	require.Len(t, m.Params, 2)
}

func TestParseAttributeSectionsAreSkipped(t *testing.T) {
	src := `[Stable]
	interface I {
		[MinVersion=2] M([MinVersion=1] int32 a) => ();
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Stmts, 1)
	require.NotNil(t, file.Stmts[0].Interface)
}

func TestParseAttributeSectionAcceptsDefaultKeywordValue(t *testing.T) {
	src := `[MyAttr=default]
	struct S {
		int32 x@0;
	};`
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Stmts, 1)
	require.NotNil(t, file.Stmts[0].Struct)
}

func TestParseMultipleModuleStatementsAllRetained(t *testing.T) {
	src := `module a;
	module b;`
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Stmts, 2)
	assert.Equal(t, "a", file.Stmts[0].Module.Name.Text(src))
	assert.Equal(t, "b", file.Stmts[1].Module.Name.Text(src))
}

func TestParseErrorOnMissingSemicolon(t *testing.T) {
	_, err := Parse(`module a`)
	assert.Error(t, err)
}

func TestParseErrorOnUnknownTopLevelToken(t *testing.T) {
	_, err := Parse(`7;`)
	assert.Error(t, err)
}

func TestParseQualifiedValueReference(t *testing.T) {
	src := `const int32 kX = Other.VALUE;`
	file, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "Other.VALUE", file.Stmts[0].Const.Value.Text(src))
}
