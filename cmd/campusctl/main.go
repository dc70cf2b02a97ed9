package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"SmartCampus/internal/admin"
	"SmartCampus/internal/authstore"
	"SmartCampus/internal/bootstrap"
	"SmartCampus/internal/config"
)

func main() {
	bootstrap.Loadenv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := os.Getenv("CAMPUS_SESSION_FILE")
	if path == "" {
		var err error
		if path, err = authstore.DefaultPath(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	store := authstore.NewStore(authstore.NewFileStorage(path))
	if _, err := store.Hydrate(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: session reset:", err)
	}

	baseURL := os.Getenv("CAMPUS_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	cli := &commandLine{
		out:             os.Stdout,
		api:             newAPIClient(baseURL, os.Getenv("API_KEY")),
		store:           store,
		openProvisioner: openMongoProvisioner,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func openMongoProvisioner(ctx context.Context) (provisioner, func(), error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, nil, errors.New("MONGO_URI is not set")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "spi_smart_campus"
	}
	client, err := config.Connect(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	repo := admin.NewMongoRepository(client.Database(dbName))
	if err := repo.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return admin.NewService(repo, nil), closeFn, nil
}
