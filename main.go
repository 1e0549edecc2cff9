package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oaiiae/contacts-api/cli/api"
	"github.com/oaiiae/contacts-api/cli/logger"
	ds "github.com/oaiiae/contacts-api/datastores"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Each flag may also be set with a SERVICE_ prefixed
// env var, e.g. `--store-uri` with `SERVICE_STORE_URI`.
type Options struct {
	logger.Options
	api.ServerOptions
	api.RouterOptions
	api.StoreOptions
}

func buildInfo() api.BuildInfo {
	return api.BuildInfo{Title: "Contacts API", Version: version, Revision: revision, Created: created}
}

func main() {
	// .env is optional, real env vars take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "could not load .env:", err)
		os.Exit(1)
	}

	newCLI().Run()
}

func newCLI() humacli.CLI {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		logger, closeLogger := logger.New(&options.Options)

		var (
			srv        *http.Server
			closeStore func(context.Context) error
		)
		hooks.OnStart(func() {
			var (
				store ds.ContactsStore
				err   error
			)
			store, closeStore, err = api.NewStore(context.Background(), &options.StoreOptions, logger)
			if err != nil {
				logger.Error("failed to open the contacts store", "err", err)
				os.Exit(1)
			}

			handler, _ := api.NewRouter(&options.RouterOptions, buildInfo(), store, logger)
			srv = api.NewServer(&options.ServerOptions, handler, logger)
			logger.Info("server listening", "addr", srv.Addr)
			err = srv.ListenAndServe()
			if err != http.ErrServerClosed {
				logger.Error("failed to listen and serve", "err", err)
			} else {
				logger.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if srv != nil {
				err := srv.Shutdown(ctx)
				if err != nil {
					logger.Warn("could not shutdown the server", "err", err)
				}
			}
			if closeStore != nil {
				err := closeStore(ctx)
				if err != nil {
					logger.Warn("could not close the contacts store", "err", err)
				}
			}
			closeLogger() //nolint: errcheck // nothing left to log to
		})
	})

	cli.Root().Use = "contacts-api"
	cli.Root().Version = version
	cli.Root().AddCommand(openapiCommand())
	return cli
}

// openapiCommand prints the API description without connecting to any store.
func openapiCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI description of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.DiscardHandler)
			_, humaAPI := api.NewRouter(&api.RouterOptions{}, buildInfo(), ds.NewContactsInmem(), logger)

			var (
				b   []byte
				err error
			)
			switch format {
			case "json":
				b, err = humaAPI.OpenAPI().MarshalJSON()
			case "yaml":
				b, err = humaAPI.OpenAPI().YAML()
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(b, '\n'))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format, json or yaml")
	return cmd
}
