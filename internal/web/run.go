package web

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/forfeits/internal/config"
	"github.com/bigredeye/forfeits/internal/database"
	"github.com/bigredeye/forfeits/internal/fpl"
)

func Run(logger *zap.Logger) error {
	conf, err := config.ParseConfig()
	if err != nil {
		return err
	}

	db, err := database.OpenDataBase(logger.Named("database"), database.MakeDSN(conf))
	if err != nil {
		return errors.Wrap(err, "Failed to open database")
	}

	client := fpl.NewClient(conf, logger.Named("fpl"))

	s, err := newServer(conf, logger, db, client)
	if err != nil {
		return errors.Wrap(err, "Failed to start server")
	}

	return errors.Wrap(s.run(), "Server failed")
}
