package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jpcodeman/partygame/internal/services/game"
)

// maxScoreboardRows keeps the embed under Discord's field limits
const maxScoreboardRows = 10

// renderStatus builds the status embed for a game snapshot
func renderStatus(out *game.GetGameOutput, statusLine, resultLine string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Game %s", out.Game.GameCode),
		Description: statusLine,
		Color:       colorInfo,
	}
	if out.Game.DatasetName != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: out.Game.DatasetName}
	}

	if round := out.CurrentRound; round != nil && !out.Game.IsComplete {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Question",
			Value: renderQuestion(round),
		})
		if names, ok := round.Options.([]string); ok && len(names) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Options",
				Value: strings.Join(names, ", "),
			})
		}
	}

	if resultLine != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Result",
			Value: resultLine,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Scoreboard",
		Value: renderScoreboard(out.Teams),
	})
	return embed
}

func renderQuestion(round *game.RoundView) string {
	if round.Level.IsMatching() {
		return fmt.Sprintf("%s\nMatch each person to their answer on the game page.", round.QuestionText)
	}
	return fmt.Sprintf("%s\n**%s**\nWho said it?", round.QuestionText, round.DisplayAnswer)
}

func renderScoreboard(teams []*game.TeamView) string {
	if len(teams) == 0 {
		return "No teams yet. Use `/partygame join` to get on the board."
	}

	var sb strings.Builder
	for i, t := range teams {
		if i == maxScoreboardRows {
			fmt.Fprintf(&sb, "...and %d more", len(teams)-maxScoreboardRows)
			break
		}
		fmt.Fprintf(&sb, "%d. %s (%d)\n", i+1, t.Name, t.Score)
	}
	return strings.TrimRight(sb.String(), "\n")
}
