package main

import (
	"fmt"
	"time"

	"github.com/Mirnes420/leadgen"
	"github.com/Mirnes420/leadgen/csv"
)

// Run executes the send command.
func (c *SendCmd) Run(deps *Dependencies) error {
	leads, err := csv.ReadLeads(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadgen.ErrorMessage(err))
		return err
	}

	sent, skipped := 0, 0
	for i, lead := range leads {
		if !lead.Resolved() {
			skipped++
			deps.Logger.Info("skipping lead without a verified email", "name", lead.Name)
			continue
		}

		// Pace deliveries so the relay does not flag the account.
		if i > 0 && c.Delay > 0 {
			select {
			case <-deps.Ctx.Done():
				return deps.Ctx.Err()
			case <-time.After(c.Delay):
			}
		}

		if err := deps.Mailer.Send(deps.Ctx, lead.Email, lead.Name, c.City); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", leadgen.ErrorMessage(err))
			return err
		}
		sent++
		fmt.Fprintf(deps.Stdout, "Sent to %s (%s)\n", lead.Name, lead.Email)
	}

	fmt.Fprintf(deps.Stdout, "Done: %d sent, %d skipped\n", sent, skipped)
	return nil
}
