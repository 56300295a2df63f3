package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kestrelgames/crossway/internal/crossway/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := crossway(); err != nil {
		logrus.Fatal(err)
	}
}

func crossway() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
