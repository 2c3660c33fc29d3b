package main

import (
	"fmt"
	"os"

	"github.com/spacesedan/sentiscore/config"
	"github.com/spacesedan/sentiscore/internal/cli"
	"github.com/spf13/viper"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	if err := cli.NewRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
