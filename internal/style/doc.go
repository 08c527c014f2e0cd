// Package style parses and patches the compound CSS-like strings the editor
// engine stores as property values (transform, text-shadow, filter), so a
// single numeric component can be edited without clobbering the others.
//
// Only integer px/deg/% values are understood. Anything else passes through
// untouched.
package style
