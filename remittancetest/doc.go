/*
Package remittancetest provides mock implementations and helpers for testing
handlers, decorators and extensions without running a full application.
*/
package remittancetest
