package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/form"
	"github.com/spigell/resume-parser/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resume form as a web page",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, client, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		formLogger := logger.Named("form")
		newController := func() *form.Controller {
			return form.New(client,
				form.WithSettle(cfg.FormSettle()),
				form.WithLogger(formLogger),
			)
		}

		srv := web.New(newController, logger.Named("web"), web.Options{
			AllowedOrigins: cfg.Serve.AllowedOrigins,
			SessionTTL:     cfg.Serve.SessionTTL,
		})

		logger.Info("starting the resume-parser web form",
			zap.String("version", version),
			zap.String("backend", cfg.BaseURL),
			zap.String("listen", cfg.Serve.Listen),
		)

		return srv.ListenAndServe(cmd.Context(), cfg.Serve.Listen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", ":3000", "address to listen on")

	viper.BindPFlag("serve.listen", serveCmd.Flags().Lookup("listen"))
}
