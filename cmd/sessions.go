package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"agentview/domain"
)

// SessionsCmd groups non-interactive session operations
type SessionsCmd struct {
	List SessionsListCmd `cmd:"list" help:"List sessions" default:"1"`
}

// SessionsListCmd lists all sessions
type SessionsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	container := NewContainer(cli, "")

	sessions, err := container.API.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if s.Format == "json" {
		return s.printJSON(sessions)
	}
	return s.printTable(sessions)
}

func (s *SessionsListCmd) printJSON(sessions []domain.Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (s *SessionsListCmd) printTable(sessions []domain.Session) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tUPDATED")
	for _, sess := range sessions {
		updated := ""
		if !sess.UpdatedAt.IsZero() {
			updated = sess.UpdatedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sess.ID, sess.Title, sess.Status, updated)
	}
	return w.Flush()
}
