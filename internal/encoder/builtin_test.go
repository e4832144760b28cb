package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gverify/internal/boogie"
	"gverify/internal/diag"
)

func attrNames(p *boogie.ProcDecl) []string {
	names := make([]string, len(p.Attrs))
	for i, a := range p.Attrs {
		names[i] = a.Name
	}
	return names
}

func Test_CreateTransferProc(t *testing.T) {
	ctx := NewContext(EncodingInt, false, diag.NewReporter())
	proc := CreateTransferProc(ctx)

	assert.Equal(t, TransferProcName, proc.Name)
	require.Len(t, proc.Params, 4)
	assert.Empty(t, proc.Returns)
	assert.Equal(t, []string{"inline", "message"}, attrNames(proc))

	// Sufficiency precondition comes first
	first, ok := proc.Body.Stmts[0].(*boogie.AssumeStmt)
	require.True(t, ok)
	assert.Equal(t, "(__balance[__msg_sender] >= amount)", first.Cond.String())

	// Conservation: amount is added to this and subtracted from sender
	var assigns []*boogie.AssignStmt
	for _, s := range proc.Body.Stmts {
		if a, ok := s.(*boogie.AssignStmt); ok {
			assigns = append(assigns, a)
		}
	}
	require.Len(t, assigns, 2)
	assert.Equal(t,
		"__balance[__this := (__balance[__this] + amount)]",
		assigns[0].RHS.String())
	assert.Equal(t,
		"__balance[__msg_sender := (__balance[__msg_sender] - amount)]",
		assigns[1].RHS.String())
}

func Test_CreateTransferProcModOverflow(t *testing.T) {
	ctx := NewContext(EncodingMod, true, diag.NewReporter())
	proc := CreateTransferProc(ctx)

	// Precondition + two TCC pairs + two overflow assumptions
	var assumes int
	for _, s := range proc.Body.Stmts {
		if _, ok := s.(*boogie.AssumeStmt); ok {
			assumes++
		}
	}
	assert.Equal(t, 7, assumes)

	var comments []string
	for _, s := range proc.Body.Stmts {
		if c, ok := s.(*boogie.CommentStmt); ok {
			comments = append(comments, c.Text)
		}
	}
	assert.Contains(t, comments, "Implicit assumption that balances cannot overflow")
}

func Test_CreateCallProc(t *testing.T) {
	ctx := NewContext(EncodingInt, false, diag.NewReporter())
	proc := CreateCallProc(ctx)

	assert.Equal(t, CallProcName, proc.Name)
	require.Len(t, proc.Params, 3)
	require.Len(t, proc.Returns, 2)
	assert.Equal(t, "__result", proc.Returns[0].Name.Name)
	assert.Equal(t, boogie.BoolType, proc.Returns[0].Type)
	// Return data stays unconstrained
	assert.Equal(t, "__calldata", proc.Returns[1].Name.Name)

	// Last statement is the nondeterministic branch
	branch, ok := proc.Body.Stmts[len(proc.Body.Stmts)-1].(*boogie.IfElseStmt)
	require.True(t, ok)
	assert.Equal(t, "*", branch.Cond.String())

	// Success path credits msg.value and sets the flag, failure path
	// only clears it
	last := branch.Then.Stmts[len(branch.Then.Stmts)-1].(*boogie.AssignStmt)
	assert.Equal(t, "__result := true;", last.String())
	require.Len(t, branch.Else.Stmts, 1)
	assert.Equal(t, "__result := false;", branch.Else.Stmts[0].String())

	var updates int
	for _, s := range branch.Then.Stmts {
		if a, ok := s.(*boogie.AssignStmt); ok {
			if _, ok := a.RHS.(*boogie.UpdExpr); ok {
				updates++
			}
		}
	}
	assert.Equal(t, 1, updates)
}

func Test_CreateSendProc(t *testing.T) {
	ctx := NewContext(EncodingInt, false, diag.NewReporter())
	proc := CreateSendProc(ctx)

	assert.Equal(t, SendProcName, proc.Name)
	require.Len(t, proc.Params, 4)
	require.Len(t, proc.Returns, 1)

	// Unlike call, send checks the sender balance up front
	first, ok := proc.Body.Stmts[0].(*boogie.AssumeStmt)
	require.True(t, ok)
	assert.Equal(t, "(__balance[__msg_sender] >= amount)", first.Cond.String())

	branch, ok := proc.Body.Stmts[len(proc.Body.Stmts)-1].(*boogie.IfElseStmt)
	require.True(t, ok)
	assert.Equal(t, "*", branch.Cond.String())

	// The amount moves on the success path only
	var updates int
	for _, s := range branch.Then.Stmts {
		if a, ok := s.(*boogie.AssignStmt); ok {
			if _, ok := a.RHS.(*boogie.UpdExpr); ok {
				updates++
			}
		}
	}
	assert.Equal(t, 2, updates)
	require.Len(t, branch.Else.Stmts, 1)
	assert.Equal(t, "__result := false;", branch.Else.Stmts[0].String())
}

func Test_BuiltinProcsBVTypes(t *testing.T) {
	ctx := NewContext(EncodingBV, false, diag.NewReporter())
	proc := CreateTransferProc(ctx)
	assert.Equal(t, boogie.BvType(256), proc.Params[0].Type)

	// The comparison and arithmetic went through bv primitives
	assert.Equal(t, "assume bv256uge(__balance[__msg_sender], amount);",
		proc.Body.Stmts[0].String())
}
