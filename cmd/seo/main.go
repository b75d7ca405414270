package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	seo "github.com/goliatone/go-seo"
	sitemapcmd "github.com/goliatone/go-seo/internal/commands/sitemap"
	"github.com/goliatone/go-seo/internal/di"
	"github.com/goliatone/go-seo/internal/reslug"
)

var moduleBuilder = buildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		log.Fatalf("seo: %v", err)
	}
}

func buildModule(ctx context.Context, cfg seo.Config, opts ...di.Option) (*seo.Module, error) {
	return seo.New(ctx, cfg, opts...)
}

func newRootCommand(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "seo",
		Short:         "Canonical URLs, redirects and sitemaps for the directory site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (environment variables override it)")

	load := func(cmd *cobra.Command) (*seo.Module, seo.Config, error) {
		cfg, err := seo.LoadConfig(configPath)
		if err != nil {
			return nil, cfg, fmt.Errorf("load config: %w", err)
		}
		module, err := moduleBuilder(cmd.Context(), cfg)
		if err != nil {
			return nil, cfg, fmt.Errorf("bootstrap module: %w", err)
		}
		return module, cfg, nil
	}

	root.AddCommand(newServeCommand(load), newSitemapCommand(load), newReslugCommand(load))
	return root
}

type moduleLoader func(cmd *cobra.Command) (*seo.Module, seo.Config, error)

func newServeCommand(load moduleLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the public routes, sitemaps and robots.txt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, cfg, err := load(cmd)
			if err != nil {
				return err
			}
			handler, err := module.Handler()
			if err != nil {
				return err
			}

			if cfg.Sitemap.WarmOnStart {
				if _, err := module.Sitemaps().Refresh(cmd.Context()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "sitemap warm-up: %v\n", err)
				}
			}
			module.StartWarmer()

			server := &http.Server{
				Addr:         cfg.HTTP.Addr,
				Handler:      handler,
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
			}
			serveErr := make(chan error, 1)
			go func() {
				serveErr <- server.ListenAndServe()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", cfg.HTTP.Addr)

			select {
			case err = <-serveErr:
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
				defer cancel()
				err = server.Shutdown(shutdownCtx)
				if closeErr := module.Close(shutdownCtx); closeErr != nil {
					err = errors.Join(err, closeErr)
				}
				return err
			}
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			return errors.Join(err, module.Close(context.Background()))
		},
	}
}

func newSitemapCommand(load moduleLoader) *cobra.Command {
	var (
		outDir    string
		documents []string
	)
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Regenerate sitemap documents and write them to disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, _, err := load(cmd)
			if err != nil {
				return err
			}
			defer module.Close(context.Background())

			msg := seo.RegenerateSitemapsCommand{
				Documents: documents,
				OutputDir: outDir,
				Result: func(written []sitemapcmd.Written) {
					for _, w := range written {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d bytes\n", w.Document, w.Path, w.Bytes)
					}
				},
			}
			if err := module.RegenerateSitemaps(cmd.Context(), msg); err != nil {
				return fmt.Errorf("regenerate sitemaps: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "public", "Directory receiving the XML documents")
	cmd.Flags().StringSliceVar(&documents, "document", nil, "Document names to regenerate (defaults to all)")
	return cmd
}

func newReslugCommand(load moduleLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "reslug TYPE ID TITLE",
		Short: "Assign a unique slug derived from TITLE to a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, _, err := load(cmd)
			if err != nil {
				return err
			}
			defer module.Close(context.Background())

			msg := seo.ReassignSlugCommand{
				Resource: args[0],
				ID:       args[1],
				Title:    args[2],
				Result: func(res reslug.Result) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s slug=%q attempts=%d\n", res.Type, res.ID, res.Slug, res.Attempts)
				},
			}
			if err := module.ReassignSlug(cmd.Context(), msg); err != nil {
				return fmt.Errorf("reassign slug: %w", err)
			}
			return nil
		},
	}
}
