/*
Package x contains some standard extensions.

All extensions are maintained in subpackages. The top level package contains
interfaces and functionality shared between the extensions, such as the
Authenticator abstraction that handlers use to query transaction signers
without binding to a concrete signature scheme.
*/
package x
