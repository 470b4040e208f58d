// Package rules provides the built-in vuelint rules.
//
// Template attributes:
//
//   - VT001: html-quotes - Attribute values must be enclosed by the
//     configured quote character (ESLint: vue/html-quotes)
//
// Rules register themselves with lint.DefaultRegistry on import.
package rules
