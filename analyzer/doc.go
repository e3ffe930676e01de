// Package analyzer implements the valueset static analysis pass.
//
// For every function declaration it builds the control flow graph used by
// the gvs command and reports, at the function name, the integer constants
// each local variable may hold when the function body ends:
//
//	func pick(c bool) int { // x may be one of [1 2] at exit of pick
//	    x := 1
//	    if c {
//	        x = 2
//	    }
//	    return x
//	}
//
// Only single-value assignments of decimal literals and of other variables
// are tracked. Any other assignment leaves the variable's set unchanged, so
// a report lists the constants seen, not every value the variable can take.
// Else branches are not analyzed: an if statement is treated as if its else
// branch were empty, so values assigned only under else are missing from
// the report. Variables declared inside an if statement, including ones
// that shadow an outer variable, are not tracked.
package analyzer
