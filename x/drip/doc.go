/*
Package drip implements an interest bearing token.

Every holder account keeps a principal amount together with an
interest rate that was locked in for that holder and the time of the
last settlement. The observable balance grows linearly with time, the
principal stays untouched until a settlement folds the accrued
interest into it. Settlement happens before any mutation of an
account, so interest is never lost and never counted twice.

A single protocol wide rate is kept in the extension configuration.
The rate can only be lowered, never raised. Deposits always lock the
current protocol rate for the recipient. Transfers pass the sender's
locked rate on to recipients that hold a zero balance.
*/
package drip
