package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/labelgen/cmd"

	// registers the http(s) corpus backend
	_ "github.com/maastricht-university/labelgen/clients"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		logrus.WithError(err).Error("labelgen failed")
		os.Exit(1)
	}
}
