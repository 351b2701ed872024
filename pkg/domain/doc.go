/*
Package domain contains the core domain models for the Clarita engine.

It defines the fundamental entities of the workflow: the FieldSet (the
accumulated structured understanding of a feature request), Tickets (the
success-path output), and the Session (the per-conversation execution
snapshot). This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.
*/
package domain
