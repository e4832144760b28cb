package encoder

import (
	"gverify/internal/boogie"
	"gverify/internal/diag"
)

// SelectToUpdate rewrites a chain of selects plus a value to store into
// the equivalent chain of updates, innermost select first:
// base[i][j] := v becomes base[i := base[i][j := v]]. The argument must
// be an actual select chain; the caller only invokes this for
// nested-index assignment targets.
func SelectToUpdate(sel boogie.Expr, value boogie.Expr) boogie.Expr {
	if selExpr, ok := sel.(*boogie.SelExpr); ok {
		if base, ok := selExpr.Base.(*boogie.SelExpr); ok {
			return SelectToUpdate(base, selExpr.ToUpdate(value))
		}
		return selExpr.ToUpdate(value)
	}
	diag.Failf("expected array/map select, got %s", sel)
	return nil
}
