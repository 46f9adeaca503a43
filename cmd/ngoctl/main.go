package main

import (
	"os"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
)

func main() {
	dotenv.LoadEnv()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
