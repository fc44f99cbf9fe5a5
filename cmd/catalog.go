package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrops-br/entity-storefront/internal/app/dto"
	"github.com/mrops-br/entity-storefront/internal/app/service"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/config"
	"github.com/mrops-br/entity-storefront/internal/infrastructure/repository/memory"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var (
	searchTerm     string
	searchCategory string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the catalog products, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := slog.New(slog.DiscardHandler)
		tracer := tracenoop.NewTracerProvider().Tracer("storefront-cli")

		repos, err := newCatalogRepos(cmd.Context(), logger, memory.NewProductRepository(tracer, logger))
		if err != nil {
			return err
		}

		products, err := service.NewProductService(
			repos.products,
			repos.categories,
			storeSettings(&cfg.Store),
			tracer,
			noop.NewMeterProvider().Meter("storefront-cli"),
			logger,
		).ListProducts(cmd.Context(), searchTerm, searchCategory)
		if err != nil {
			return err
		}

		return printProducts(cmd.OutOrStdout(), products, cfg.Store.Currency)
	},
}

func init() {
	catalogCmd.Flags().StringVar(&searchTerm, "search", "", "match product name or description")
	catalogCmd.Flags().StringVar(&searchCategory, "category", "", "category slug")
	rootCmd.AddCommand(catalogCmd)
}

func printProducts(w io.Writer, products []*dto.ProductResponse, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tCATEGORY\tPRICE\tFINAL\tSTOCK\tNAME")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%v %s\t%v %s\t%d\t%s\n",
			p.Slug, p.Category, p.Price, currency, p.FinalPrice, currency, p.Stock, p.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d products\n", len(products))
	return err
}

func storeSettings(cfg *config.StoreConfig) service.StoreSettings {
	return service.StoreSettings{
		Name:            cfg.Name,
		Currency:        cfg.Currency,
		DemoUserName:    cfg.DemoUserName,
		NewUserName:     cfg.NewUserName,
		RelatedProducts: cfg.RelatedProducts,
		FeaturedLimit:   cfg.FeaturedLimit,
	}
}
