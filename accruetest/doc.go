/*
Package accruetest provides mocks and helpers for testing code built
on top of the accrue framework. All implementations are kept trivial
on purpose, so that a failing test points at the tested code and not
at the double.
*/
package accruetest
