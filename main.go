package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/breakthrough/internal/breakthrough/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := breakthrough(); err != nil {
		logrus.Fatal(err)
	}
}

func breakthrough() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
