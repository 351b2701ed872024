/*
Package ports defines the interfaces (driven ports) through which the Clarita
core talks to the outside world: session persistence, distributed locking,
and the natural-language field extractor collaborator.

It also ships a reusable contract test suite (RunSessionStoreContract) that
every SessionStore implementation must pass.
*/
package ports
