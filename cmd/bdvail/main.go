package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bdvail/internal/api"
	intconfig "bdvail/internal/config"
	"bdvail/internal/cli"
	"bdvail/internal/prefs"
	"bdvail/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	utils.InitLogger(utils.LogOptions{Level: env.LogLevel, Format: env.LogFormat, File: env.LogFile})

	policy, err := cli.PolicyFromEnv(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	client, err := api.NewClient(env.BaseURL, env.HTTPTimeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(client, cli.Options{
		Policy:  policy,
		Prefs:   prefs.NewStore(env.PrefsPath),
		BaseURL: client.BaseURL(),
	}, os.Stdout, os.Stderr)

	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
