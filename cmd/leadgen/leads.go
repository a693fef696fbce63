package main

import (
	"fmt"

	"github.com/Mirnes420/leadgen"
)

// Run executes the leads command.
func (c *LeadsCmd) Run(deps *Dependencies) error {
	filter := leadgen.LeadFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	if c.City != "" {
		filter.City = &c.City
	}

	leads, err := deps.Leads.FindLeads(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadgen.ErrorMessage(err))
		return err
	}

	if len(leads) == 0 {
		fmt.Fprintln(deps.Stdout, "No leads found. Use 'leadgen scrape' to collect some.")
		return nil
	}

	for _, lead := range leads {
		website := lead.Website
		if website == "" {
			website = leadgen.Unresolved
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s/%s\n", lead.Name, lead.Email, website, lead.Category, lead.City)
	}

	return nil
}
