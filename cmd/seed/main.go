// Command seed provisions practitioner accounts. Signup only ever creates
// patients, so this is the way practitioners enter the system.
//
//	seed                              the six default practitioners
//	seed -fake 20                     defaults plus 20 generated ones
//	seed -email a@b.com -password secret123 -name "Ada Lovelace"
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/bootstrap"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/brianvoe/gofakeit/v7"
)

func main() {
	fakeCount := flag.Int("fake", 0, "number of generated practitioners to add")
	email := flag.String("email", "", "create a single practitioner with this email")
	password := flag.String("password", "", "password for -email")
	name := flag.String("name", "", "full name for -email, split on the first space")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Store == config.StoreMemory {
		slog.Warn("seeding the in-memory store has no lasting effect")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		slog.Error("storage setup failed", "error", err)
		os.Exit(1)
	}
	defer res.Close()

	faker := gofakeit.New(0)
	creds := services.NewCredentialStore(res.Store, cfg.BcryptCost)

	list := defaultPractitioners
	pw := defaultPassword
	if *email != "" || *name != "" || *password != "" {
		p, err := single(*email, *name)
		if err == nil && *password == "" {
			err = errors.New("-password is required with -email")
		}
		if err != nil {
			slog.Error("invalid arguments", "error", err)
			flag.Usage()
			res.Close()
			os.Exit(2)
		}
		list, pw = []practitioner{p}, *password
	} else if *fakeCount > 0 {
		list = append(append([]practitioner{}, defaultPractitioners...), fakePractitioners(faker, *fakeCount)...)
	}

	created, err := seed(ctx, creds, faker, list, pw)
	if err != nil {
		slog.Error("seed failed", "created", created, "error", err)
		res.Close()
		os.Exit(1)
	}

	directory := services.NewPractitionerDirectory(res.Store, res.Store, res.Cache, cfg.DirectoryCacheTTL)
	if err := directory.Invalidate(ctx); err != nil {
		slog.Warn("directory cache not invalidated", "error", err)
	}

	slog.Info("seed complete", "created", created, "requested", len(list))
}
