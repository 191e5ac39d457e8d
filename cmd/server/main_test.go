package main

import (
	"io"
	"os"
	"testing"

	"github.com/99minutos/decision-service/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}
