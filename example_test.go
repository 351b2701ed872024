package clarita_test

import (
	"context"
	"fmt"
	"log"

	"github.com/clarita-pm/clarita"
)

// Example demonstrates the full conversation for a complete request:
// tickets are generated immediately and the session suspends for review.
func Example() {
	eng := clarita.New()
	ctx := context.Background()

	sess, err := eng.Analyze(ctx, "demo", "Add a save button to the dashboard page")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("status:", sess.Status)
	fmt.Println("tickets:", len(sess.Tickets))

	sess, err = eng.Resume(ctx, sess.ID, "ok")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("status:", sess.Status)

	// Output:
	// status: suspended
	// tickets: 4
	// status: succeeded
}

// Example_clarification shows a vague request suspending with questions
// before tickets can be generated.
func Example_clarification() {
	eng := clarita.New()
	ctx := context.Background()

	sess, err := eng.Analyze(ctx, "demo-2", "add a button")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("expect:", sess.Prompt.Expect)
	fmt.Println("questions:", len(sess.Questions))

	sess, err = eng.Resume(ctx, sess.ID, "yes, the dashboard page")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("page:", sess.Fields.TargetPage)
	fmt.Println("expect:", sess.Prompt.Expect)

	// Output:
	// expect: clarification
	// questions: 3
	// page: dashboard
	// expect: acknowledgment
}
