package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aretw0/cofiy/pkg/core"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

func printOK(w io.Writer, format string, args ...any) {
	okColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}

func printWarnings(w io.Writer, warnings []core.Warning) {
	for _, warn := range warnings {
		warnColor.Fprintf(w, "! %s\n", warn)
	}
}

// printError renders domain failures with the context a user needs to act.
func printError(w io.Writer, err error) {
	var verr *core.ValidationError
	switch {
	case errors.Is(err, core.ErrDuplicateCompany) && errors.As(err, &verr):
		errColor.Fprintf(w, "Error: company %q (id %s) already exists; the bundle was not imported\n", verr.Name, verr.CompanyID)
	case errors.Is(err, core.ErrMultipleCompaniesInZip) && errors.As(err, &verr):
		errColor.Fprintf(w, "Error: a ZIP bundle must hold exactly one company, this one holds %d\n", verr.Count)
	default:
		errColor.Fprintf(w, "Error: %v\n", err)
	}
}
