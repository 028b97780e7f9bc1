// popfetch downloads a POP3 mailbox into an mbox file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-pop3/client"
	"github.com/zostay/go-pop3/mbox"
	"github.com/zostay/go-pop3/message"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "popfetch",
		Short: "Download a POP3 mailbox into an mbox file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg.logLevel)
			slog.SetDefault(logger)
			logger.Info("starting popfetch", "host", cfg.host, "tls", cfg.useTLS, "output", cfg.output)

			return run(cfg, logger)
		},
	}

	registerFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	host        string
	port        int
	user        string
	pass        string
	useTLS      bool
	output      string
	headersOnly bool
	delete      bool
	logLevel    string
}

func registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("host", "", "POP3 server hostname")
	flags.Int("port", 0, "POP3 server port (default 110, or 995 with --tls)")
	flags.String("user", "", "Mailbox username")
	flags.String("pass", "", "Mailbox password (falls back to POP3_PASS env var)")
	flags.Bool("tls", false, "Use implicit TLS for the connection")
	flags.String("output", "", "Path of the mbox file to append fetched mail to")
	flags.Bool("headers-only", false, "Fetch headers only and print a summary instead of storing mail")
	flags.Bool("delete", false, "Mark fetched messages for deletion on the server")
	flags.String("log-level", "info", "Logging level: debug, info, warn, error")

	cobra.CheckErr(cmd.MarkFlagRequired("host"))
	cobra.CheckErr(cmd.MarkFlagRequired("user"))
}

func loadConfig(cmd *cobra.Command) (config, error) {
	flags := cmd.Flags()

	var (
		cfg config
		err error
	)
	if cfg.host, err = flags.GetString("host"); err != nil {
		return config{}, err
	}
	if cfg.port, err = flags.GetInt("port"); err != nil {
		return config{}, err
	}
	if cfg.user, err = flags.GetString("user"); err != nil {
		return config{}, err
	}
	if cfg.pass, err = flags.GetString("pass"); err != nil {
		return config{}, err
	}
	if cfg.useTLS, err = flags.GetBool("tls"); err != nil {
		return config{}, err
	}
	if cfg.output, err = flags.GetString("output"); err != nil {
		return config{}, err
	}
	if cfg.headersOnly, err = flags.GetBool("headers-only"); err != nil {
		return config{}, err
	}
	if cfg.delete, err = flags.GetBool("delete"); err != nil {
		return config{}, err
	}
	if cfg.logLevel, err = flags.GetString("log-level"); err != nil {
		return config{}, err
	}

	if cfg.pass == "" {
		cfg.pass = os.Getenv("POP3_PASS")
	}

	return cfg, validateConfig(cfg)
}

func validateConfig(cfg config) error {
	if cfg.pass == "" {
		return fmt.Errorf("password must be provided via --pass or POP3_PASS env var")
	}
	if cfg.port < 0 || cfg.port > 65535 {
		return fmt.Errorf("--port must be between 0 and 65535")
	}
	if !cfg.headersOnly && cfg.output == "" {
		return fmt.Errorf("--output is required unless --headers-only is set")
	}
	if cfg.headersOnly && cfg.delete {
		return fmt.Errorf("--headers-only and --delete are mutually exclusive")
	}

	switch cfg.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.logLevel)
	}

	return nil
}

func run(cfg config, logger *slog.Logger) error {
	opts := []client.Option{
		client.WithPort(cfg.port),
		client.WithLogger(logger),
	}
	if cfg.useTLS {
		opts = append(opts, client.WithTLS())
	}

	c := client.New(cfg.host, opts...)
	if err := c.Connect(cfg.user, cfg.pass); err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.host, err)
	}
	defer func() {
		if c.Connected() {
			if err := c.Disconnect(); err != nil {
				logger.Warn("disconnect failed", "err", err)
			}
		}
	}()

	if cfg.headersOnly {
		msgs, err := c.ListAndRetrieveHeaders()
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			fmt.Printf("%4d %8d %-30s %s\n", msg.Number, msg.Bytes, msg.From, msg.Subject)
		}
		return c.Disconnect()
	}

	msgs, err := c.ListAndRetrieve()
	if err != nil {
		return err
	}
	logger.Info("mailbox retrieved", "count", len(msgs))

	if err := store(cfg.output, msgs); err != nil {
		return err
	}

	if cfg.delete {
		for _, msg := range msgs {
			if err := c.Delete(msg); err != nil {
				return err
			}
		}
		logger.Info("messages marked for deletion", "count", len(msgs))
	}

	// deletion only takes effect if QUIT succeeds, so surface errors
	return c.Disconnect()
}

func store(path string, msgs []*message.Message) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open mbox %s: %w", path, err)
	}

	if err := mbox.Write(f, msgs...); err != nil {
		_ = f.Close()
		return fmt.Errorf("write mbox %s: %w", path, err)
	}
	return f.Close()
}

func setupLogger(level string) *slog.Logger {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)

	switch level {
	case "debug":
		lv.Set(slog.LevelDebug)
	case "warn":
		lv.Set(slog.LevelWarn)
	case "error":
		lv.Set(slog.LevelError)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})
	return slog.New(handler)
}
