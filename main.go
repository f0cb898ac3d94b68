package main

import (
	"os"

	"github.com/aidosq/sozdyq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
