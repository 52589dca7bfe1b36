package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"quizdoc/internal/bot"
	"quizdoc/internal/httpapi"
	"quizdoc/internal/mcptool"
	"quizdoc/internal/render"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			format, err := render.ParseFormat(a.cfg.Render.Format)
			if err != nil {
				return fmt.Errorf("config render.format: %w", err)
			}
			p, err := a.pipeline(cmd.Context(), false)
			if err != nil {
				return err
			}
			handler := httpapi.NewHandler(httpapi.Config{
				Pipeline:       p,
				Logger:         a.log(),
				MaxUploadBytes: a.cfg.Server.MaxUploadBytes,
				DefaultFormat:  format,
				Title:          a.cfg.Render.Title,
			})
			a.log().Info("serving http api", "addr", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)
			return httpapi.Serve(cmd.Context(), addr, handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	return cmd
}

func mcpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the quiz tools over MCP on stdio",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			format, err := render.ParseFormat(a.cfg.Render.Format)
			if err != nil {
				return fmt.Errorf("config render.format: %w", err)
			}
			p, err := a.pipeline(cmd.Context(), false)
			if err != nil {
				return err
			}
			srv := mcptool.NewServer(Version, mcptool.Config{
				Pipeline:      p,
				DefaultFormat: format,
				Title:         a.cfg.Render.Title,
			})
			a.log().Debug("mcp server starting on stdio")
			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

func botCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			token := strings.TrimSpace(os.Getenv(a.cfg.Bot.TokenEnv))
			if token == "" {
				return fmt.Errorf("bot token is not set; export %s", a.cfg.Bot.TokenEnv)
			}
			format, err := render.ParseFormat(a.cfg.Bot.Format)
			if err != nil {
				return fmt.Errorf("config bot.format: %w", err)
			}
			api, err := bot.Connect(token)
			if err != nil {
				return err
			}
			p, err := a.pipeline(cmd.Context(), false)
			if err != nil {
				return err
			}
			b, err := bot.New(bot.Config{
				API:         api,
				Pipeline:    p,
				Format:      format,
				Title:       a.cfg.Render.Title,
				Logger:      a.log(),
				MaxFileSize: a.cfg.Extraction.MaxFileSize,
			})
			if err != nil {
				return err
			}
			a.log().Info("telegram bot polling")
			return b.Run(cmd.Context())
		},
	}
}
