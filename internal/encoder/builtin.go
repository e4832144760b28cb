package encoder

import (
	log "github.com/sirupsen/logrus"

	"gverify/internal/boogie"
	"gverify/internal/solidity"
	"gverify/internal/token"
)

// The built-in procedures share the global balance map and are
// synthesized once per contract run. Fallback execution and
// re-entrancy are deliberately approximated by a nondeterministic
// success/failure outcome.

// CreateTransferProc models transfer: moves amount from the caller to
// the receiving contract, assuming the caller has enough balance.
// Transfer propagates failures, so there is no success flag.
func CreateTransferProc(ctx *Context) *boogie.ProcDecl {
	amount := boogie.Id("amount")
	// Parameters: this, msg.sender, msg.value, amount
	params := []boogie.Binding{
		{Name: ctx.This(), Type: ctx.IntTypeName(256)},
		{Name: ctx.MsgSender(), Type: ctx.IntTypeName(256)},
		{Name: ctx.MsgValue(), Type: ctx.IntTypeName(256)},
		{Name: amount, Type: ctx.IntTypeName(256)},
	}

	uint256 := solidity.IntType(256, false)

	body := boogie.NewBlock()
	thisBal := boogie.ArrSel(ctx.Balance(), ctx.This())
	senderBal := boogie.ArrSel(ctx.Balance(), ctx.MsgSender())

	// Precondition: there is enough ether to transfer
	geq := EncodeArithBinaryOp(ctx, nil, token.GreaterThanOrEqual, senderBal, amount, 256, false)
	body.Add(boogie.Assume(geq.Expr))

	// balance[this] += amount
	if ctx.Encoding() == EncodingMod {
		body.Add(
			boogie.Assume(TCCForExpr(thisBal, uint256)),
			boogie.Assume(TCCForExpr(amount, uint256)))
	}
	addBalance := EncodeArithBinaryOp(ctx, nil, token.Add, thisBal, amount, 256, false)
	if ctx.Overflow() && addBalance.CC != nil {
		body.Add(
			boogie.Comment("Implicit assumption that balances cannot overflow"),
			boogie.Assume(addBalance.CC))
	}
	body.Add(boogie.Assign(ctx.Balance(),
		boogie.ArrUpd(ctx.Balance(), ctx.This(), addBalance.Expr)))

	// balance[msg.sender] -= amount
	if ctx.Encoding() == EncodingMod {
		body.Add(
			boogie.Assume(TCCForExpr(senderBal, uint256)),
			boogie.Assume(TCCForExpr(amount, uint256)))
	}
	subSenderBalance := EncodeArithBinaryOp(ctx, nil, token.Sub, senderBal, amount, 256, false)
	if ctx.Overflow() && subSenderBalance.CC != nil {
		body.Add(
			boogie.Comment("Implicit assumption that balances cannot overflow"),
			boogie.Assume(subSenderBalance.CC))
	}
	body.Add(boogie.Assign(ctx.Balance(),
		boogie.ArrUpd(ctx.Balance(), ctx.MsgSender(), subSenderBalance.Expr)))
	body.Add(boogie.Comment("TODO: call fallback, exception handling"))

	transfer := boogie.NewProc(TransferProcName, params, nil, body)
	transfer.AddAttr(boogie.NewAttr("inline", 1))
	transfer.AddAttr(boogie.NewAttr("message", "transfer"))
	log.Debugf("synthesized %s", TransferProcName)
	return transfer
}

// CreateCallProc models a low-level call: the callee may credit
// msg.value to this and succeed, or fail for reasons outside the
// contract's control. The second return stands for the call's return
// data and stays unconstrained.
func CreateCallProc(ctx *Context) *boogie.ProcDecl {
	// Parameters: this, msg.sender, msg.value
	params := []boogie.Binding{
		{Name: ctx.This(), Type: ctx.IntTypeName(256)},
		{Name: ctx.MsgSender(), Type: ctx.IntTypeName(256)},
		{Name: ctx.MsgValue(), Type: ctx.IntTypeName(256)},
	}

	result := boogie.Id("__result")
	calldata := boogie.Id("__calldata")
	returns := []boogie.Binding{
		{Name: result, Type: boogie.BoolType},
		{Name: calldata, Type: ctx.IntTypeName(256)},
	}

	uint256 := solidity.IntType(256, false)

	// Successful call
	thenBlock := boogie.NewBlock()
	thisBal := boogie.ArrSel(ctx.Balance(), ctx.This())

	// balance[this] += msg.value
	if ctx.Encoding() == EncodingMod {
		thenBlock.Add(
			boogie.Assume(TCCForExpr(thisBal, uint256)),
			boogie.Assume(TCCForExpr(ctx.MsgValue(), uint256)))
	}
	addBalance := EncodeArithBinaryOp(ctx, nil, token.Add, thisBal, ctx.MsgValue(), 256, false)
	if ctx.Overflow() && addBalance.CC != nil {
		thenBlock.Add(
			boogie.Comment("Implicit assumption that balances cannot overflow"),
			boogie.Assume(addBalance.CC))
	}
	thenBlock.Add(boogie.Assign(ctx.Balance(),
		boogie.ArrUpd(ctx.Balance(), ctx.This(), addBalance.Expr)))
	thenBlock.Add(boogie.Assign(result, boogie.NewBoolLit(true)))

	// Unsuccessful call
	elseBlock := boogie.NewBlock(boogie.Assign(result, boogie.NewBoolLit(false)))

	body := boogie.NewBlock()
	body.Add(boogie.Comment("TODO: call fallback"))
	body.Add(boogie.IfElse(boogie.Nondet(), thenBlock, elseBlock))

	call := boogie.NewProc(CallProcName, params, returns, body)
	call.AddAttr(boogie.NewAttr("inline", 1))
	call.AddAttr(boogie.NewAttr("message", "call"))
	log.Debugf("synthesized %s", CallProcName)
	return call
}

// CreateSendProc models send: like call it may fail
// nondeterministically, but the source construct checks the sender
// balance first, so sufficiency is assumed up front, and the amount
// only moves on the success path.
func CreateSendProc(ctx *Context) *boogie.ProcDecl {
	amount := boogie.Id("amount")
	result := boogie.Id("__result")
	// Parameters: this, msg.sender, msg.value, amount
	params := []boogie.Binding{
		{Name: ctx.This(), Type: ctx.IntTypeName(256)},
		{Name: ctx.MsgSender(), Type: ctx.IntTypeName(256)},
		{Name: ctx.MsgValue(), Type: ctx.IntTypeName(256)},
		{Name: amount, Type: ctx.IntTypeName(256)},
	}
	returns := []boogie.Binding{
		{Name: result, Type: boogie.BoolType},
	}

	uint256 := solidity.IntType(256, false)

	// Successful transfer
	thenBlock := boogie.NewBlock()
	thisBal := boogie.ArrSel(ctx.Balance(), ctx.This())
	senderBal := boogie.ArrSel(ctx.Balance(), ctx.MsgSender())

	// balance[this] += amount
	if ctx.Encoding() == EncodingMod {
		thenBlock.Add(
			boogie.Assume(TCCForExpr(thisBal, uint256)),
			boogie.Assume(TCCForExpr(amount, uint256)))
	}
	addBalance := EncodeArithBinaryOp(ctx, nil, token.Add, thisBal, amount, 256, false)
	if ctx.Overflow() && addBalance.CC != nil {
		thenBlock.Add(
			boogie.Comment("Implicit assumption that balances cannot overflow"),
			boogie.Assume(addBalance.CC))
	}
	thenBlock.Add(boogie.Assign(ctx.Balance(),
		boogie.ArrUpd(ctx.Balance(), ctx.This(), addBalance.Expr)))

	// balance[msg.sender] -= amount
	if ctx.Encoding() == EncodingMod {
		thenBlock.Add(
			boogie.Assume(TCCForExpr(senderBal, uint256)),
			boogie.Assume(TCCForExpr(amount, uint256)))
	}
	subSenderBalance := EncodeArithBinaryOp(ctx, nil, token.Sub, senderBal, amount, 256, false)
	if ctx.Overflow() && subSenderBalance.CC != nil {
		thenBlock.Add(
			boogie.Comment("Implicit assumption that balances cannot overflow"),
			boogie.Assume(subSenderBalance.CC))
	}
	thenBlock.Add(boogie.Assign(ctx.Balance(),
		boogie.ArrUpd(ctx.Balance(), ctx.MsgSender(), subSenderBalance.Expr)))
	thenBlock.Add(boogie.Assign(result, boogie.NewBoolLit(true)))

	// Unsuccessful transfer
	elseBlock := boogie.NewBlock(boogie.Assign(result, boogie.NewBoolLit(false)))

	body := boogie.NewBlock()
	// Precondition: there is enough ether to transfer
	geq := EncodeArithBinaryOp(ctx, nil, token.GreaterThanOrEqual, senderBal, amount, 256, false)
	body.Add(boogie.Assume(geq.Expr))
	body.Add(boogie.Comment("TODO: call fallback"))
	body.Add(boogie.IfElse(boogie.Nondet(), thenBlock, elseBlock))

	send := boogie.NewProc(SendProcName, params, returns, body)
	send.AddAttr(boogie.NewAttr("inline", 1))
	send.AddAttr(boogie.NewAttr("message", "send"))
	log.Debugf("synthesized %s", SendProcName)
	return send
}
