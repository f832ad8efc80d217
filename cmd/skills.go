package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/skills"
	"github.com/abhisek/careerquest/internal/ui/components"
	"github.com/abhisek/careerquest/internal/ui/theme"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Browse skills and XP",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills with the user's XP (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		if category != "" && !skills.Category(category).Valid() {
			return fmt.Errorf("unknown category %q", category)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		l, err := a.ledger.Get(cmd.Context(), a.user)
		if err != nil {
			return err
		}

		views := ledger.Views(l)
		if category != "" {
			filtered := views[:0]
			for _, v := range views {
				if v.Category == skills.Category(category) {
					filtered = append(filtered, v)
				}
			}
			views = filtered
		}
		if a.json {
			return printJSON(a.out, views)
		}

		w := a.out
		heading(w, fmt.Sprintf("Skills for %s", a.user))
		fmt.Fprintf(w, "%-24s  %-12s  %6s  %5s\n", "Name", "Category", "XP", "Level")
		for _, v := range views {
			fmt.Fprintf(w, "%-24s  %s  %6d  %5d\n",
				v.Name,
				theme.Category(v.Category).Render(fmt.Sprintf("%-12s", v.Category.DisplayName())),
				v.XP, v.Level)
		}
		fmt.Fprintf(w, "\n%d skills, %d XP total\n", len(views), l.Total())
		return nil
	},
}

var skillsShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show one skill's XP, level and progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := skills.Lookup(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		l, err := a.ledger.Get(cmd.Context(), a.user)
		if err != nil {
			return err
		}
		var view ledger.SkillView
		for _, v := range ledger.Views(l) {
			if v.Name == s.Name {
				view = v
				break
			}
		}
		if a.json {
			return printJSON(a.out, view)
		}

		w := a.out
		heading(w, view.Name)
		field(w, "ID", view.ID)
		field(w, "Category", theme.Category(view.Category).Render(view.Category.DisplayName()))
		field(w, "XP", view.XP)
		field(w, "Next level", fmt.Sprintf("%d XP", view.NextLevelXP))
		fmt.Fprintln(w)
		fmt.Fprintln(w, components.LevelBar(view.XP, ruleWidth).View())
		return nil
	},
}

func init() {
	skillsListCmd.Flags().StringP("category", "c", "", "Filter by category (cognitive, analytical, creative, social, technical)")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsShowCmd)
}
