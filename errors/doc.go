/*
Package errors implements custom error interfaces for the whole module.

Each returned error is categorized by wrapping one of the registered root
errors. Test an error category with the root error Is method:

	if errors.ErrNotFound.Is(err) {
	    ...
	}

Errors gain a stack trace the first time they are wrapped, so wrap early and
wrap often.
*/
package errors
