package main

import (
	"github.com/aerugo/ancestral-vision/internal/server"
	"github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	"github.com/aerugo/ancestral-vision/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	server.Init()
}
