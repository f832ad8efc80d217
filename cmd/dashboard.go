package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/ui/components"
	"github.com/abhisek/careerquest/internal/ui/theme"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show top skills, career matches and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.advisor.Dashboard(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		if a.json {
			return printJSON(a.out, d)
		}

		w := a.out
		heading(w, fmt.Sprintf("%s's dashboard", d.UserID))
		field(w, "Total XP", d.TotalXP)

		fmt.Fprintln(w, theme.Section.Render("Top skills"))
		for _, s := range d.TopSkills {
			fmt.Fprintf(w, "  %-22s %s\n", s.Name, components.LevelBar(s.XP, 44).View())
		}

		fmt.Fprintln(w, theme.Section.Render("Categories"))
		for _, c := range d.Categories {
			fmt.Fprintf(w, "  %s %5d XP\n",
				theme.Category(c.Category).Render(fmt.Sprintf("%-12s", c.Category.DisplayName())), c.XP)
		}

		fmt.Fprintln(w, theme.Section.Render("Careers"))
		printMatches(w, careers.Top(d.Careers, 3))

		fmt.Fprintln(w, theme.Section.Render("Insights"))
		printInsights(w, d.Insights)

		if len(d.RecentSessions) > 0 {
			fmt.Fprintln(w, theme.Section.Render("Recent sessions"))
			for _, s := range d.RecentSessions {
				state := theme.Hint.Render("open")
				if s.Completed {
					state = theme.Good.Render("done")
				}
				fmt.Fprintf(w, "  %s  %-16s  score %-3d  %s\n",
					s.StartedAt.Local().Format("2006-01-02 15:04"), s.GameID, s.Score, state)
			}
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a career report JSON file",
	Long: "Build the career report (skills, top careers, insights and " +
		"recommendations) and write it as career-report-YYYY-MM-DD.json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("out")
		stdout, _ := cmd.Flags().GetBool("stdout")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.advisor.Report(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		if stdout || a.json {
			return printJSON(a.out, r)
		}

		path, err := r.WriteFile(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, theme.Good.Render("Report written to "+path))
		return nil
	},
}

func printMatches(w io.Writer, matches []careers.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, theme.Hint.Render("  No careers in the catalog."))
		return
	}
	for _, m := range matches {
		pct := theme.Match(m.Percentage).Render(fmt.Sprintf("%3d%%", m.Percentage))
		fmt.Fprintf(w, "  %s  %-28s", pct, truncate(m.Career.Title, 28))
		if len(m.MissingSkills) > 0 {
			fmt.Fprint(w, theme.Hint.Render(fmt.Sprintf("  missing: %v", m.MissingSkills)))
		}
		fmt.Fprintln(w)
	}
}

func printInsights(w io.Writer, ins []insights.Insight) {
	for _, in := range ins {
		fmt.Fprintf(w, "  %s %s\n", theme.InsightMarker(in.Type), in.Text)
	}
}

func init() {
	reportCmd.Flags().StringP("out", "o", ".", "Directory to write the report into")
	reportCmd.Flags().Bool("stdout", false, "Print the report instead of writing a file")
}
