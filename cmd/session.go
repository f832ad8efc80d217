package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerquest/internal/session"
	"github.com/abhisek/careerquest/internal/ui/theme"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Track game sessions and their answers",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <game-id>",
	Short: "Start a session and print its ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeFlag, _ := cmd.Flags().GetString("type")
		userType, err := session.ParseUserType(typeFlag)
		if err != nil {
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.sessions.Start(cmd.Context(), a.user, args[0], userType)
		if err != nil {
			return err
		}
		if a.json {
			return printJSON(a.out, s)
		}
		fmt.Fprintln(a.out, s.ID)
		return nil
	},
}

var sessionAnswerCmd = &cobra.Command{
	Use:   "answer <session-id>",
	Short: "Append an answer to an open session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetInt("question")
		answer, _ := cmd.Flags().GetString("answer")
		correct, _ := cmd.Flags().GetBool("correct")
		responseMs, _ := cmd.Flags().GetInt("time")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.sessions.RecordAnswer(cmd.Context(), args[0], session.Answer{
			QuestionID:     question,
			UserAnswer:     answer,
			Correct:        correct,
			ResponseTimeMs: responseMs,
		})
	},
}

var sessionEndCmd = &cobra.Command{
	Use:   "end <session-id>",
	Short: "Complete a session and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.sessions.End(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sum := session.Summarize(s)
		if a.json {
			return printJSON(a.out, struct {
				Session *session.Session `json:"session"`
				Summary session.Summary  `json:"summary"`
			}{s, sum})
		}
		printSession(a, s, sum)
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.sessions.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if a.json {
			return printJSON(a.out, s)
		}
		printSession(a, s, session.Summarize(s))
		for _, ans := range s.Answers {
			mark := theme.Good.Render("✓")
			if !ans.Correct {
				mark = theme.Bad.Render("✗")
			}
			fmt.Fprintf(a.out, "  Q%-3d %s %-20s %6dms\n", ans.QuestionID, mark, truncate(ans.UserAnswer, 20), ans.ResponseTimeMs)
		}
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.sessions.List(cmd.Context(), a.user, limit)
		if err != nil {
			return err
		}
		if a.json {
			return printJSON(a.out, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(a.out, "No sessions found.")
			return nil
		}

		w := a.out
		fmt.Fprintf(w, "%-36s  %-16s  %-16s  %-7s  %5s  %s\n",
			"ID", "Started", "Game", "Type", "Score", "Done")
		for _, s := range list {
			done := "✗"
			if s.Completed {
				done = "✓"
			}
			fmt.Fprintf(w, "%-36s  %-16s  %-16s  %-7s  %5d  %s\n",
				s.ID, s.StartedAt.Local().Format("2006-01-02 15:04"), truncate(s.GameID, 16), s.UserType, s.Score, done)
		}
		return nil
	},
}

func printSession(a *app, s *session.Session, sum session.Summary) {
	w := a.out
	heading(w, fmt.Sprintf("Session %s", s.ID))
	field(w, "Game", s.GameID)
	field(w, "Player", fmt.Sprintf("%s (%s)", s.UserID, s.UserType))
	field(w, "Score", s.Score)
	field(w, "Answers", fmt.Sprintf("%d/%d correct (%.0f%%)", sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100))
	field(w, "Avg time", sum.AvgResponseTime.Round(time.Millisecond))
	if s.Completed {
		field(w, "Duration", sum.Duration.Round(time.Second))
	} else {
		field(w, "Status", theme.Hint.Render("in progress"))
	}
}

func init() {
	sessionStartCmd.Flags().StringP("type", "t", "student", "Player type: student or adult")

	sessionAnswerCmd.Flags().IntP("question", "q", 0, "Question number")
	sessionAnswerCmd.Flags().StringP("answer", "a", "", "The user's answer")
	sessionAnswerCmd.Flags().Bool("correct", false, "Whether the answer was correct")
	sessionAnswerCmd.Flags().Int("time", 0, "Response time in milliseconds")

	sessionListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionAnswerCmd)
	sessionCmd.AddCommand(sessionEndCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionListCmd)
}
