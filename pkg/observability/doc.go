/*
Package observability provides lifecycle hooks for monitoring a slipbox.

It includes Prometheus metrics for draw outcomes, phase transitions and pool
size, structured logging of the same events, and Chain to combine several
hook sets into one.
*/
package observability
