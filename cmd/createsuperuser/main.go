package main

import (
	"flag"

	"github.com/pantrybase/recipebox/config"
	"github.com/pantrybase/recipebox/internal/database"
	"github.com/pantrybase/recipebox/internal/logging"
	"github.com/pantrybase/recipebox/internal/service"
)

// Bootstraps an administrator account with the staff and superuser
// flags set.
func main() {
	email := flag.String("email", "", "email address for the superuser")
	password := flag.String("password", "", "password for the superuser")
	flag.Parse()

	log := logging.New()
	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	users := service.NewUserService(db, cfg.JWTSecret)
	user, err := users.CreateSuperuser(*email, *password)
	if err != nil {
		log.WithError(err).Fatal("failed to create superuser")
	}

	log.WithField("email", user.Email).Info("superuser created")
}
