package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/screen"
	quizscreen "github.com/abhisek/prepiz/internal/screens/quiz"
	"github.com/abhisek/prepiz/internal/screens/setup"
	"github.com/abhisek/prepiz/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a timed test",
	Long: `Take a timed test.

Without scope flags the interactive setup opens. With --subject, --unit or
--paper the test starts right away; add --plain to answer line by line
without the full-screen interface.`,
	Example: `  prepiz quiz
  prepiz quiz --subject polity --count 10 --duration 15m
  prepiz quiz --subject polity --unit Parliament --plain
  prepiz quiz --paper "GS III"`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("subject", "", "Subject folder, e.g. polity")
	quizCmd.Flags().String("unit", "", "Unit (topic tag) within --subject")
	quizCmd.Flags().String("paper", "", `GS paper, e.g. "GS II"`)
	quizCmd.Flags().Int("count", 0, "Number of questions (default from config)")
	quizCmd.Flags().Duration("duration", 0, "Time budget, e.g. 20m (default from config)")
	quizCmd.Flags().Bool("plain", false, "Answer in the terminal without the full-screen interface")
	quizCmd.MarkFlagsMutuallyExclusive("subject", "paper")
	quizCmd.MarkFlagsMutuallyExclusive("unit", "paper")
}

// scopeFromFlags returns the requested scope and whether one was given.
func scopeFromFlags(cmd *cobra.Command) (questionbank.Scope, bool, error) {
	subject, _ := cmd.Flags().GetString("subject")
	unit, _ := cmd.Flags().GetString("unit")
	paper, _ := cmd.Flags().GetString("paper")

	var scope questionbank.Scope
	switch {
	case paper != "":
		scope = questionbank.PaperScope(paper)
	case unit != "":
		scope = questionbank.UnitScope(subject, unit)
	case subject != "":
		scope = questionbank.SubjectScope(subject)
	default:
		return scope, false, nil
	}
	if err := scope.Validate(); err != nil {
		return scope, true, err
	}
	return scope, true, nil
}

func quizConfigFromFlags(cmd *cobra.Command, defaults quiz.Config) (quiz.Config, error) {
	cfg := defaults
	if n, _ := cmd.Flags().GetInt("count"); n != 0 {
		cfg.QuestionCount = n
	}
	if d, _ := cmd.Flags().GetDuration("duration"); d != 0 {
		cfg.Duration = d
	}
	return cfg, cfg.Validate()
}

func runQuiz(cmd *cobra.Command, args []string) error {
	scope, scoped, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}
	plain, _ := cmd.Flags().GetBool("plain")
	if plain && !scoped {
		return errors.New("--plain needs --subject, --unit or --paper")
	}

	if _, err := quizConfigFromFlags(cmd, quiz.DefaultConfig()); err != nil {
		return err
	}

	if !plain {
		return runApp(cmd, func(d *deps) screen.Screen {
			defaults := d.quizDefaults()
			if !scoped {
				return setup.New(d.bank, d.practice, defaults)
			}
			cfg, err := quizConfigFromFlags(cmd, defaults)
			if err != nil {
				cfg = defaults
			}
			return quizscreen.New(d.practice, scope, cfg)
		})
	}

	d, err := buildDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	cfg, err := quizConfigFromFlags(cmd, d.quizDefaults())
	if err != nil {
		return err
	}
	return runPlainQuiz(cmd.Context(), d.practice, scope, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runPlainQuiz starts a test for scope and runs it with runPlainSession.
func runPlainQuiz(ctx context.Context, svc *practice.Service, scope questionbank.Scope, cfg quiz.Config, r io.Reader, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := svc.Begin(ctx, scope, cfg)
	if errors.Is(err, quiz.ErrNoContent) {
		fmt.Fprintf(w, "No questions available for %s.\n", scope.Label())
		return nil
	}
	if err != nil {
		return err
	}
	return runPlainSession(ctx, svc, sess, r, w)
}

// runPlainSession asks the questions one by one on w, reading answers from
// r. The countdown runs alongside; when it expires the test ends wherever
// the user is. The session is closed once the attempt is handed off.
func runPlainSession(ctx context.Context, svc *practice.Service, sess *quiz.Session, r io.Reader, w io.Writer) error {
	defer sess.Close()

	fmt.Fprintf(w, "%s: %d questions, %s. Answer with a-d or 1-4, Enter to skip,\n", sess.Scope().Label(), sess.Len(), quizscreen.Clock(sess.Remaining()))
	fmt.Fprintln(w, "m to mark for review, s to submit.")

	out, err := askAll(ctx, sess, r, w, time.NewTicker(quiz.TickInterval))
	if err != nil {
		return err
	}

	res, saveErr := svc.Complete(ctx, out)
	printOutcome(w, out)
	if saveErr != nil {
		fmt.Fprintf(w, "Could not save this attempt: %v\n", saveErr)
		return saveErr
	}
	fmt.Fprintf(w, "Saved as attempt #%d.\n", res.AttemptID)
	return nil
}

func askAll(ctx context.Context, sess *quiz.Session, r io.Reader, w io.Writer, ticker *time.Ticker) (*quiz.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer ticker.Stop()

	timedOut := make(chan *quiz.Outcome, 1)
	go func() {
		out, _ := practice.RunCountdown(ctx, sess, ticker.C)
		timedOut <- out
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for i := 0; i < sess.Len(); i++ {
		sess.Jump(i)
		q, _ := sess.Current()
		printQuestion(w, i, sess.Len(), q, sess.Remaining())

		select {
		case out := <-timedOut:
			if out != nil {
				fmt.Fprintln(w, "\nTime's up!")
				return out, nil
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return sess.Submit()
		case <-ctx.Done():
			return nil, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return submit(sess, timedOut)
			}
			switch cmd := strings.ToLower(strings.TrimSpace(line)); {
			case cmd == "s":
				return submit(sess, timedOut)
			case cmd == "m":
				sess.MarkForReview(true)
			case cmd != "":
				if idx, ok := components.OptionIndex(cmd, len(q.Options)); ok {
					sess.Select(q.Options[idx].ID)
				} else {
					fmt.Fprintf(w, "  %q is not an option, skipped.\n", line)
				}
			}
		}
	}
	return submit(sess, timedOut)
}

// submit ends the session. When the timer got there first its outcome is
// taken instead.
func submit(sess *quiz.Session, timedOut <-chan *quiz.Outcome) (*quiz.Outcome, error) {
	out, err := sess.Submit()
	if errors.Is(err, quiz.ErrAlreadyFinished) {
		if out := <-timedOut; out != nil {
			return out, nil
		}
	}
	return out, err
}

func printQuestion(w io.Writer, i, n int, q questionbank.Question, remaining time.Duration) {
	fmt.Fprintf(w, "\nQ%d/%d  [%s left]  %s\n", i+1, n, quizscreen.Clock(remaining), q.TopicTag)
	fmt.Fprintln(w, q.Text)
	for j, o := range q.Options {
		fmt.Fprintf(w, "  %s) %s\n", components.OptionLabel(j), o.Text)
	}
	fmt.Fprint(w, "> ")
}

func printOutcome(w io.Writer, out *quiz.Outcome) {
	b := out.Breakdown
	fmt.Fprintf(w, "\nScore %.2f / %.0f (%.1f%%)\n", b.RawScore, b.MaxScore, b.Percentage)
	fmt.Fprintf(w, "%d correct, %d wrong, %d skipped of %d. Time %s of %s.\n",
		b.Correct, b.Wrong, b.Skipped, b.Total,
		quizscreen.Clock(out.Elapsed), quizscreen.Clock(out.Budget))
}
