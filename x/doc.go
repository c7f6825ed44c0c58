/*
Package x contains the shared interfaces and helpers that extensions
build upon, without being tied to a concrete application.

Extensions live in subpackages of x and depend on x, never the other
way around.
*/
package x
