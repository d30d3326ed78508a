package main

import (
	"draftforge/cmd/cmd"
	"draftforge/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
