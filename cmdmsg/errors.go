package cmdmsg

import "errors"

var (
	// ErrAlreadyReplied is returned by Reply when the command message already has a reply.
	ErrAlreadyReplied = errors.New("cmdmsg: target message was already replied")
	// ErrNotResponseMessage is returned when a reply was not authored by the bot itself.
	ErrNotResponseMessage = errors.New("cmdmsg: message is not the response message")
	// ErrNotCommandInteraction is returned when an interaction carries no application command.
	ErrNotCommandInteraction = errors.New("cmdmsg: interaction is not an application command")
)
