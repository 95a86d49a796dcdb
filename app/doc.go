/*
Package app assembles message handlers into an executable stack.

A Router maps message paths to the handlers registered for them. Decorators
wrap the router to apply cross cutting concerns (panic recovery, savepoints,
pause gating) on every transaction. ChainDecorators composes decorators and
a final handler into a single Handler.
*/
package app
