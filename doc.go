/*
Package clarita is a suspendable workflow executor that turns free-text
feature requests into structured development tickets through a short
clarification conversation.

A session walks a fixed graph: the request is parsed into structured
fields, a sufficiency gate decides whether enough is known, and the run
either suspends with clarifying questions or generates a deterministic
ticket set and suspends for review. Suspended sessions persist in a
pluggable store and resume when the user's reply arrives, so the
conversation can span processes, transports, and machines.

# Usage

Create an engine and drive it with Analyze and Resume:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/clarita-pm/clarita"
		"github.com/clarita-pm/clarita/pkg/domain"
	)

	func main() {
		eng := clarita.New()
		ctx := context.Background()

		sess, err := eng.Analyze(ctx, "", "Add a save button to the dashboard page")
		if err != nil {
			log.Fatal(err)
		}

		for sess.Status == domain.StatusSuspended {
			fmt.Println(sess.Prompt.Text)
			sess, err = eng.Resume(ctx, sess.ID, readUserReply())
			if err != nil {
				log.Fatal(err)
			}
		}

		for _, t := range sess.Tickets {
			fmt.Println(t.Title, t.Estimate)
		}
	}

By default fields are extracted with an offline regex parser and sessions
live in memory. Inject an LLM extractor (pkg/adapters/openai) and a Redis
store and locker (pkg/adapters/redis) for production deployments. The
engine is also exposed over REST (pkg/adapters/http) and MCP
(pkg/adapters/mcp) through the clarita CLI.
*/
package clarita
