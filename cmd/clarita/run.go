package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clarita-pm/clarita"
	"github.com/clarita-pm/clarita/internal/render"
	"github.com/clarita-pm/clarita/internal/tui"
	"github.com/clarita-pm/clarita/pkg/domain"
)

var runCmd = &cobra.Command{
	Use:   "run [request]",
	Short: "Analyze a feature request interactively",
	Long: `Runs a full analysis conversation in the terminal. The request can be
given as an argument or typed at the prompt; clarifying questions and the
generated ticket plan are answered inline.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger := newLogger(cmd, cfg)
		engine := buildEngine(cfg, logger, false)
		sessionID, _ := cmd.Flags().GetString("session")

		tui.PrintBanner(strings.TrimSpace(clarita.Version))
		renderMarkdown := tui.NewRenderer()
		reader := bufio.NewReader(os.Stdin)

		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			fmt.Print("Describe the feature you want to build:\n> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			text = strings.TrimSpace(line)
		}
		if text == "" {
			return fmt.Errorf("no feature request given")
		}

		sess, err := engine.Analyze(cmd.Context(), sessionID, text)
		if err != nil {
			return err
		}

		for sess.Status == domain.StatusSuspended {
			out, err := renderMarkdown(sess.Prompt.Text)
			if err != nil {
				out = sess.Prompt.Text
			}
			fmt.Println(out)

			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			reply := strings.TrimSpace(line)
			if reply == "" {
				continue
			}

			sess, err = engine.Resume(cmd.Context(), sess.ID, reply)
			if err != nil {
				return err
			}
		}

		switch sess.Status {
		case domain.StatusSucceeded:
			out, err := renderMarkdown(render.TicketReport(sess))
			if err != nil {
				out = render.TicketReport(sess)
			}
			fmt.Println(out)
			fmt.Printf("Done. Session: %s\n", sess.ID)
		case domain.StatusFailed:
			fmt.Printf("Analysis stopped: %s\n", sess.Reason)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("session", "", "Session ID to restart an existing conversation")
}
