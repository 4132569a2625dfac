// commands/command.go
package commands

import "cmdbridge/interfaces"

// CommandHandler is implemented by every command.
type CommandHandler = interfaces.CommandHandler

// Category names used by GetCategory.
const (
	CategoryUtility = "utility"
	CategoryInfo    = "info"
)
