package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/ui/theme"
)

var careersCmd = &cobra.Command{
	Use:   "careers",
	Short: "Browse the career catalog and match against it",
}

var careersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all careers in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		catalog := a.advisor.Catalog()
		if a.json {
			return printJSON(a.out, catalog)
		}

		w := a.out
		heading(w, "Careers")
		fmt.Fprintf(w, "%-22s  %-28s  %s\n", "ID", "Title", "Required skills")
		for _, c := range catalog {
			fmt.Fprintf(w, "%-22s  %-28s  %s\n",
				c.ID, truncate(c.Title, 28), strings.Join(c.RequiredSkills, ", "))
		}
		fmt.Fprintf(w, "\n%d careers\n", len(catalog))
		return nil
	},
}

var careersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a career's details and learning resources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		c, ok := a.advisor.Catalog().Get(args[0])
		if !ok {
			return fmt.Errorf("career %q not found", args[0])
		}
		if a.json {
			return printJSON(a.out, c)
		}

		w := a.out
		heading(w, c.Title)
		fmt.Fprintln(w, theme.Body.Render(c.Description))
		fmt.Fprintln(w)
		field(w, "Salary", c.AverageSalary)
		field(w, "Growth", c.GrowthProjection)
		field(w, "Requires", strings.Join(c.RequiredSkills, ", "))
		field(w, "Learn next", strings.Join(c.NextSkills, ", "))
		if len(c.Resources) > 0 {
			fmt.Fprintln(w, theme.Section.Render("Resources"))
			for _, r := range c.Resources {
				fmt.Fprintf(w, "  [%s] %s %s\n", r.Type, r.Title, theme.Hint.Render(r.URL))
			}
		}
		return nil
	},
}

var careersMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match the user's earned skills against every career",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		l, err := a.ledger.Get(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		matches := a.advisor.Catalog().Match(ledger.EarnedSkillNames(l))
		if limit > 0 {
			matches = careers.Top(matches, limit)
		}
		if a.json {
			return printJSON(a.out, matches)
		}

		w := a.out
		heading(w, fmt.Sprintf("Career matches for %s", a.user))
		printMatches(w, matches)
		if l.Total() == 0 {
			fmt.Fprintln(w, theme.Hint.Render("\nPlay a few games to earn skills."))
		}
		return nil
	},
}

func init() {
	careersMatchCmd.Flags().IntP("limit", "n", 0, "Number of careers to show (0 for all)")

	careersCmd.AddCommand(careersListCmd)
	careersCmd.AddCommand(careersShowCmd)
	careersCmd.AddCommand(careersMatchCmd)
}
