package main

import (
	"github.com/bornholm/chatten/internal/command"
	"github.com/bornholm/chatten/internal/command/chat"
	"github.com/bornholm/chatten/internal/command/file"
	"github.com/bornholm/chatten/internal/command/task"
)

func main() {
	command.Main(
		"chatten", "a chatten client tool",
		chat.Command(),
		file.Command(),
		task.Command(),
	)
}
