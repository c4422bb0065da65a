package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inquirydesk/backend/internal/model"
	"github.com/inquirydesk/backend/internal/triage"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var query, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			board := triage.NewBoard(opts.client())
			if err := board.Refresh(cmd.Context()); err != nil {
				return errors.New("could not load submissions")
			}
			board.SetQuery(query)
			board.SetStatusFilter(filter)

			out := cmd.OutOrStdout()
			printCounts(out, board.Counts())
			printTable(out, board.Visible())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search name, email or phone")
	cmd.Flags().StringVar(&status, "status", "all", "all, new, in_progress or completed")
	return cmd
}

func printCounts(w io.Writer, c model.StatusCounts) {
	fmt.Fprintf(w, "Total %d | %s %d | %s %d | %s %d\n",
		c.Total,
		label(model.StatusNew), c.New,
		label(model.StatusInProgress), c.InProgress,
		label(model.StatusCompleted), c.Completed,
	)
}

func printTable(w io.Writer, subs []*model.Submission) {
	if len(subs) == 0 {
		fmt.Fprintln(w, "No submissions match.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tNAME\tCONTACT\tSTATUS")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Name,
			contactLine(s),
			label(s.Status),
		)
	}
	_ = tw.Flush()
}

func contactLine(s *model.Submission) string {
	var parts []string
	if s.Email != nil {
		parts = append(parts, *s.Email)
	}
	if s.Phone != nil {
		parts = append(parts, *s.Phone)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func label(st model.Status) string {
	l, err := st.Label()
	if err != nil {
		return string(st)
	}
	return l
}
