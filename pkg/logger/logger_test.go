package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Distriops-api/pkg/logger"
)

func TestNew_NivelPorDefectoSegunEntorno(t *testing.T) {
	l := logger.New(logger.Config{Service: "distriops", Env: "development"})
	assert.Equal(t, zerolog.DebugLevel, l.Zerolog().GetLevel(), "development por defecto en debug")

	l = logger.New(logger.Config{Service: "distriops", Env: "production"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel(), "production por defecto en info")
}

func TestNew_NivelExplicito(t *testing.T) {
	l := logger.New(logger.Config{Service: "distriops", Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())

	// Nivel no reconocido cae a info, nunca falla el arranque.
	l = logger.New(logger.Config{Service: "distriops", Env: "production", Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
