package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/vu2ptt/upload-to-rbn/internal/adapters/fs"
	logAdapter "github.com/vu2ptt/upload-to-rbn/internal/adapters/log"
	"github.com/vu2ptt/upload-to-rbn/internal/adapters/udp"
	"github.com/vu2ptt/upload-to-rbn/internal/app"
	"github.com/vu2ptt/upload-to-rbn/internal/cliconfig"
	"github.com/vu2ptt/upload-to-rbn/internal/ports"
)

const helpDescription = `
Forward FT8 decodes from a multi-band SDR receiver to RBN Aggregator.

Reads the receiver's decode log and rebroadcasts every decode as WSJT-X
compatible UDP datagrams, announcing band changes as it goes. Point RBN
Aggregator at the same port and it will upload the spots to the Reverse
Beacon Network.

Highlights:
  - Snaps receive frequencies to the aggregator's canonical band list.
  - One-shot by default for cron-driven uploads; --follow tails the log.
  - Configure via file ($HOME/.rbnupload/config.toml), RBN_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  rbnupload 192.168.1.255 2237 /var/ft8/decodes.txt
  rbnupload --addr 127.0.0.1 --port 2237 --file decodes.txt --follow
  rbnupload --config $HOME/.rbnupload/config.toml --dry-run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "rbnupload [addr] [port] [file]",
		Short:   "Forward FT8 decodes to RBN Aggregator over UDP",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Args:    cobra.MaximumNArgs(3),
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.rbnupload/config.toml),
			// then apply env and flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment variables (RBN_*) override file config but are
			// overridden by flags (checked via changed map).
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Positional arguments mirror the classic invocation and take
			// the same precedence as flags.
			if err := applyArgs(&cfg, args); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Debug {
				cliconfig.SetDebug()
				log = cliconfig.Logger()
			}

			logger := logAdapter.NewZerologAdapter(log)

			source := newSource(cfg, logger)
			sender, err := newSender(cfg, logger)
			if err != nil {
				return fmt.Errorf("open sender: %w", err)
			}
			defer sender.Close()

			uploader := app.NewUploader(app.Config{
				SoftwareID:  cfg.SoftwareID,
				DECall:      cfg.DECall,
				DEGrid:      cfg.DEGrid,
				DXGrid:      cfg.DXGrid,
				StatusPause: cfg.StatusPause,
			}, source, sender, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := uploader.Run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info().Msg("received signal, stopping")
					return nil
				}
				return err
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rbnupload/config.toml)")
	root.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "IPv4 broadcast or unicast destination address")
	root.Flags().IntVar(&cfg.Port, "port", cfg.Port, "UDP destination port")
	root.Flags().StringVar(&cfg.File, "file", cfg.File, "decode log file written by the receiver")
	root.Flags().StringVar(&cfg.SoftwareID, "id", cfg.SoftwareID, "software identifier announced in every datagram")
	root.Flags().StringVar(&cfg.DECall, "de-call", cfg.DECall, "placeholder operator callsign")
	root.Flags().StringVar(&cfg.DEGrid, "de-grid", cfg.DEGrid, "placeholder operator grid")
	root.Flags().StringVar(&cfg.DXGrid, "dx-grid", cfg.DXGrid, "placeholder DX grid")
	root.Flags().BoolVar(&cfg.Follow, "follow", cfg.Follow, "keep reading as the receiver appends decodes")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "build datagrams but do not transmit")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	root.Flags().DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "poll cadence in follow mode")
	root.Flags().DurationVar(&cfg.StatusPause, "status-pause", cfg.StatusPause, "pause after a status datagram")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("rbnupload failed")
		os.Exit(1)
	}
}

// applyArgs maps the positional <addr> <port> <file> form onto the config.
func applyArgs(cfg *cliconfig.Config, args []string) error {
	if len(args) > 0 {
		cfg.Addr = args[0]
	}
	if len(args) > 1 {
		port, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", args[1], err)
		}
		cfg.Port = port
	}
	if len(args) > 2 {
		cfg.File = args[2]
	}
	return nil
}

// newSource builds the decode source for the configured file.
func newSource(cfg cliconfig.Config, logger ports.Logger) ports.DecodeSource {
	opts := []fs.Option{fs.WithLogger(logger)}
	if cfg.Follow {
		opts = append(opts, fs.WithFollow(cfg.PollInterval))
	}
	return fs.NewFile(cfg.File, opts...)
}

// newSender builds the datagram sender, or a counting stub for dry runs.
func newSender(cfg cliconfig.Config, logger ports.Logger) (ports.DatagramSender, error) {
	if cfg.DryRun {
		return udp.NewDiscard(logger), nil
	}
	return udp.NewBroadcaster(cfg.Addr, cfg.Port)
}
