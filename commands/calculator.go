package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cmdbridge/cmdmsg"

	"github.com/Knetic/govaluate"
	"github.com/bwmarrin/discordgo"
)

var errEmptyExpression = errors.New("empty expression")

type CalculatorCommand struct{}

func (c *CalculatorCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "calc",
		Description: "Evaluate an expression",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "expression",
				Description: "Expression to evaluate, e.g. (10 + 20) * 3 / 2",
				Required:    true,
			},
		},
	}
}

func (c *CalculatorCommand) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	expression := cmd.RawOptions()
	result, err := evaluate(expression)
	if err != nil {
		_, err = cmd.Reply(ctx, fmt.Sprintf("❌ Invalid expression: %v", err))
		return err
	}

	embed := &discordgo.MessageEmbed{
		Color: 0x2ECC71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Expression", Value: fmt.Sprintf("```%s```", expression)},
			{Name: "Result", Value: fmt.Sprintf("```%s```", result)},
		},
	}
	if author := cmd.Author(); author != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: author.Username, IconURL: author.AvatarURL("")}
	}
	_, err = cmd.ReplyComplex(ctx, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
	return err
}

func (c *CalculatorCommand) GetCategory() string { return CategoryUtility }

// evaluate computes expression with govaluate and formats the result.
// Whole numbers are printed without a fractional part.
func evaluate(expression string) (string, error) {
	if expression == "" {
		return "", errEmptyExpression
	}
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return "", err
	}
	result, err := expr.Evaluate(nil)
	if err != nil {
		return "", err
	}
	switch v := result.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}
