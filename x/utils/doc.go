/*
Package utils contains various utility decorators that are used to wrap the
message handlers: transaction savepoints and panic recovery.
*/
package utils
