/*
Package errors implements custom error interfaces for the whole
module.

The idea is to reuse as many errors declared here as possible and
define a new error only as a last resort. Errors are categorized by a
root error, registered with a unique numeric code. Each instance
created during the runtime wraps one of the root errors, so that a
failure can be tested with the Is method and the code can be safely
returned to the client.

Extensions may register their own root errors. Use codes above 1000
for extension specific failures to avoid clashing with this package.
*/
package errors
