// Package host wraps the external programs a conversion drives: pkg(8)
// and the handful of base utilities that report versions, manage services,
// rebuild databases and handle boot environments.
//
// Every method is one synchronous call through a command.Runner. Nothing
// here decides anything; the decisions live in the packages that call it.
package host
