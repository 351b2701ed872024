/*
Package workflow defines the Clarita analysis workflow: a fixed, immutable
graph of typed steps that a session is ticked through by the engine.

The graph is a single top-level sequence with one embedded two-way branch:

	parse -> gate -+- sufficient ---------------------> tickets -> review
	               `- insufficient -> clarify -> await -^      (ack)
	                                  (suspend)

Steps never mutate the session; they return an Outcome and the engine applies
it. Suspension steps (await, review) halt the workflow with a rendered prompt
and interpret the injected reply on re-entry.
*/
package workflow
