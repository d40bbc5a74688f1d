package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(file *MojomFile) []EventKind {
	p := NewPreorder(file)
	var kinds []EventKind
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func TestPreorderEmitsBalancedEnterLeave(t *testing.T) {
	src := `
	module test.mod;
	struct MyStruct {
		const string kMyStructString = "const_value";
	};
	interface MyInterface {
		MyMethod() => ();
	};
	`
	file, err := Parse(src)
	require.NoError(t, err)

	kinds := collectEvents(file)
	require.Equal(t, EnterMojomFile, kinds[0])
	require.Equal(t, LeaveMojomFile, kinds[len(kinds)-1])

	assert.Equal(t, []EventKind{
		EnterMojomFile,
		VisitModule,
		EnterStruct,
		VisitConst,
		LeaveStruct,
		EnterInterface,
		VisitMethod,
		LeaveInterface,
		LeaveMojomFile,
	}, kinds)
}

func TestPreorderFindsModuleByValue(t *testing.T) {
	src := `module test.mod;`
	file, err := Parse(src)
	require.NoError(t, err)

	p := NewPreorder(file)
	var found *Module
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		if ev.Kind == VisitModule {
			found = ev.Module
			break
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "test.mod", found.Name.Text(src))
}

func TestPreorderEmptyFileYieldsOnlyFileBracket(t *testing.T) {
	file, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EnterMojomFile, LeaveMojomFile}, collectEvents(file))
}

func TestPreorderIsRestartable(t *testing.T) {
	src := `struct A {};`
	file, err := Parse(src)
	require.NoError(t, err)

	first := collectEvents(file)
	second := collectEvents(file)
	assert.Equal(t, first, second)
}

func TestPreorderSiblingContainersEachBalance(t *testing.T) {
	src := `
	interface I1 {};
	struct S1 {};
	interface I2 {};
	`
	file, err := Parse(src)
	require.NoError(t, err)
	kinds := collectEvents(file)
	assert.Equal(t, []EventKind{
		EnterMojomFile,
		EnterInterface, LeaveInterface,
		EnterStruct, LeaveStruct,
		EnterInterface, LeaveInterface,
		LeaveMojomFile,
	}, kinds)
}
