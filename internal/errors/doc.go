// Package errors provides coded, actionable errors for the vstore CLI.
//
// Each code maps to a category, a short message and an optional detail:
//
//	err := errors.New("E102").
//	    WithDetail("port 70000 is out of range").
//	    WithSuggestion(`Set "inspect.port" between 1 and 65535`)
//
//	fmt.Fprint(os.Stderr, err.Format())
//
// The library packages under pkg/ do not use this package; they return
// plain sentinel errors.
package errors
