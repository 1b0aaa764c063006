package main

import "github.com/saikiran-1508/chronicle/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.ConnectRedis()
	defer app.DisconnectRedis()

	app.ConnectNATS()
	defer app.DisconnectNATS()

	app.ConnectGemini()
	defer app.DisconnectGemini()

	app.StartReminderEngine()
	defer app.StopReminderEngine()

	app.MustListenAndServeHTTP()
}
