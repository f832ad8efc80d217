package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerquest/internal/games"
	"github.com/abhisek/careerquest/internal/ui/theme"
)

var playCmd = &cobra.Command{
	Use:   "play <game-id>",
	Short: "Record the outcome of a finished game round",
	Long: "Record the outcome of a finished game round and credit XP to the " +
		"game's skills. Unknown game IDs credit the default skill bucket.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcomeFlag, _ := cmd.Flags().GetString("outcome")
		score, _ := cmd.Flags().GetInt("score")
		responseMs, _ := cmd.Flags().GetInt("time")

		outcome, err := games.ParseOutcome(outcomeFlag)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.ledger.RecordRound(cmd.Context(), a.user, games.Round{
			GameID:         args[0],
			Outcome:        outcome,
			Score:          score,
			ResponseTimeMs: responseMs,
		})
		if err != nil {
			return err
		}
		if a.json {
			return printJSON(a.out, res)
		}

		w := a.out
		if g, ok := games.Get(args[0]); ok {
			heading(w, fmt.Sprintf("%s: %s", g.Name, outcome))
		} else {
			heading(w, fmt.Sprintf("%s: %s", args[0], outcome))
			fmt.Fprintln(w, theme.Hint.Render("Unknown game, XP went to the default skill bucket."))
		}

		for _, name := range res.Resolution.Skills {
			xp, ok := res.Delta[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-24s %s  (%d XP total)\n",
				name, theme.Good.Render(fmt.Sprintf("+%d XP", xp)), res.Ledger.XP(name))
		}
		if len(res.Delta) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("  No skills credited."))
		}
		for _, up := range res.LevelUps {
			fmt.Fprintln(w, theme.Highlight.Render(
				fmt.Sprintf("  Level up! %s reached level %d", up.Skill, up.To)))
		}
		return nil
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the mini-games and the skills they train",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		all := games.All()
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, all)
		}

		heading(w, "Games")
		fmt.Fprintf(w, "%-20s  %-24s  %s\n", "ID", "Name", "Skills")
		for _, g := range all {
			fmt.Fprintf(w, "%-20s  %-24s  %s\n", g.ID, g.Name, joinSkills(g.Skills))
		}
		return nil
	},
}

func joinSkills(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return names[0] + " (primary), " + names[1]
}

func init() {
	playCmd.Flags().StringP("outcome", "o", "win", "Round outcome: win, lose or draw")
	playCmd.Flags().IntP("score", "s", 0, "Round score; every 10 points adds 1 bonus XP")
	playCmd.Flags().Int("time", 0, "Response time in milliseconds")
}
