// Package cli constructs the graphene command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. The format command substitutes placeholder templates and the
// relay command forwards go test events into a browser console.
package cli
