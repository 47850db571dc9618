// Package textformat renders simplified message templates.
//
// Templates use two placeholder forms: anonymous `{}` placeholders consumed in
// argument order and indexed `{N}` placeholders resolved by argument position.
// Indexed placeholders left unresolved are renumbered by the argument count so
// a partially formatted template can be formatted again with the remaining
// arguments. The package also provides the `format` Cobra command.
package textformat
