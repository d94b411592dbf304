package main

import (
	"flag"

	"panda-gate/pod/global"
	"panda-gate/pod/initialize"
	"panda-gate/pod/server"
)

func main() {
	configPath := flag.String("config", "", "path to pod config yaml")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build pod")
	}

	global.Logger.Info().
		Str("host", app.Cfg.HTTP.Host).
		Int("port", app.Cfg.HTTP.Port).
		Msg("pod listening")
	if err := server.Start(app.Cfg.HTTP.Host, app.Cfg.HTTP.Port, app.Router); err != nil {
		global.Logger.Fatal().Err(err).Msg("pod server")
	}
}
