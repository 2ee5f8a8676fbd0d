package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New cria o logger raiz do serviço. Em desenvolvimento a saída é legível no
// console; nos demais ambientes é JSON estruturado.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
