package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kestrelgames/crossway"
)

const spinnerCharSet = 11

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive match",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play runs an interactive match in the terminal. Without
			--bot both seats are taken by humans entering moves at the
			prompt; with --bot the second seat is played by the named
			registered bot under the configured time budget.

			Moves are entered as "row,col" (for example "3,3"). The
			words "swap" and "resign" perform the corresponding
			actions; "board" reprints the current position and "quit"
			abandons the match.`),
		RunE: runPlay,
	}

	cmd.Flags().IntP("size", "s", 7, "board side length")
	cmd.Flags().Int("players", 2, "number of players")
	cmd.Flags().StringP("bot", "b", "", "seat this registered bot as player 1")
	cmd.Flags().Duration("budget", crossway.DefaultBotBudget, "per-move time budget for bots")
	cmd.Flags().Bool("skip-forfeit", false, "skip the turn instead of resigning when a bot forfeits")
	cmd.Flags().String("save", "", `write the final transcript to this file ("auto" picks a data-directory path)`)

	return cmd
}

func runPlay(cmd *cobra.Command, _ []string) error {
	size, _ := cmd.Flags().GetInt("size")
	players, _ := cmd.Flags().GetInt("players")
	botName, _ := cmd.Flags().GetString("bot")
	budget, _ := cmd.Flags().GetDuration("budget")
	skipForfeit, _ := cmd.Flags().GetBool("skip-forfeit")
	savePath, _ := cmd.Flags().GetString("save")

	config := crossway.Config{Size: size, Players: players, Variant: crossway.VariantStandard}

	options := []func(*crossway.Game){
		crossway.WithBotBudget(budget),
	}
	if skipForfeit {
		options = append(options, crossway.WithForfeitPolicy(crossway.ForfeitSkip))
	}
	if botName != "" {
		seat, err := crossway.BotSeat(1, botName, defaultRegistry())
		if err != nil {
			return err
		}
		options = append(options, seat)
	}

	game, err := crossway.NewGame(config, options...)
	if err != nil {
		return err
	}

	if err := runMatch(cmd, game); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), game.ExportPosition())
	fmt.Fprintf(cmd.OutOrStdout(), "result: %s\n", game.Status())

	return saveTranscript(game, savePath)
}

func runMatch(cmd *cobra.Command, game *crossway.Game) error {
	input := bufio.NewScanner(cmd.InOrStdin())

	for !game.Finished() {
		player := game.Turn()
		if game.Seat(player) != nil {
			s := spinner.New(spinner.CharSets[spinnerCharSet], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" player %d is thinking...", player)
			s.Start()
			err := game.BotTurn(cmd.Context())
			s.Stop()
			if err != nil {
				// Forfeits are already settled inside the game; just
				// tell the user what happened.
				logrus.Warn(err)
			}
			continue
		}

		fmt.Fprint(cmd.OutOrStdout(), game.ExportPosition())
		fmt.Fprintf(cmd.OutOrStdout(), "P%d> ", player)
		if !input.Scan() {
			logrus.Info("input closed, abandoning match")
			return input.Err()
		}

		move, ok, quit := parsePlayerInput(cmd, input.Text(), player, game)
		if quit {
			return nil
		}
		if !ok {
			continue
		}
		if err := game.Submit(move); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "rejected: %v\n", err)
		}
	}
	return nil
}

func parsePlayerInput(cmd *cobra.Command, line string, player crossway.PlayerID, game *crossway.Game) (move crossway.Move, ok, quit bool) {
	switch text := strings.TrimSpace(line); text {
	case "":
		return crossway.Move{}, false, false
	case "swap":
		return crossway.Swap(player), true, false
	case "resign":
		return crossway.Resign(player), true, false
	case "board":
		fmt.Fprint(cmd.OutOrStdout(), game.ExportPosition())
		return crossway.Move{}, false, false
	case "quit":
		return crossway.Move{}, false, true
	default:
		rowStr, colStr, found := strings.Cut(text, ",")
		if !found {
			fmt.Fprintf(cmd.OutOrStdout(), "unrecognized input %q (want \"row,col\", \"swap\" or \"resign\")\n", text)
			return crossway.Move{}, false, false
		}
		row, rowErr := strconv.Atoi(strings.TrimSpace(rowStr))
		col, colErr := strconv.Atoi(strings.TrimSpace(colStr))
		if rowErr != nil || colErr != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "unrecognized coordinate %q\n", text)
			return crossway.Move{}, false, false
		}
		return crossway.Placement(player, crossway.Coord{Row: row, Col: col}), true, false
	}
}

func saveTranscript(game *crossway.Game, path string) error {
	if path == "" {
		return nil
	}
	if path == "auto" {
		name := filepath.Join("crossway", "games",
			time.Now().Format("2006-01-02T15-04-05")+".cwt")
		resolved, err := xdg.DataFile(name)
		if err != nil {
			return err
		}
		path = resolved
	}
	if err := os.WriteFile(path, []byte(game.Transcript()), 0o644); err != nil {
		return err
	}
	logrus.Infof("transcript saved to %s", path)
	return nil
}
