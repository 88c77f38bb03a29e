package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chartserve/core/browser"
	"chartserve/core/config"
	"chartserve/core/logger"
	"chartserve/core/server"
	"chartserve/feature/static"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// serveOptions holds flag values. Only flags set explicitly override the
// loaded configuration.
type serveOptions struct {
	host        string
	port        int
	scan        bool
	maxAttempts int
	root        string
	rootMode    string
	open        bool
	landing     string
}

var (
	rootServeOpts serveOptions
	serveOpts     serveOptions
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chart assets until interrupted",
	Long: `Binds the HTTP server, prints the available pages and serves files from
the root directory until Ctrl+C. With --scan the first free port starting at
--port is used; without it a busy port is a fatal error.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func addServeFlags(cmd *cobra.Command, o *serveOptions) {
	f := cmd.Flags()
	f.StringVar(&o.host, "host", "localhost", "address to bind")
	f.IntVarP(&o.port, "port", "p", 8000, "port to bind, or first port to try with --scan")
	f.BoolVar(&o.scan, "scan", true, "scan for the first free port starting at --port")
	f.IntVar(&o.maxAttempts, "max-attempts", 10, "number of ports tried with --scan")
	f.StringVarP(&o.root, "root", "d", "", "directory to serve (default selected by --root-mode)")
	f.StringVar(&o.rootMode, "root-mode", server.RootModeCwd, "root when --root is empty: cwd or executable")
	f.BoolVar(&o.open, "open", true, "open the landing page in the default browser")
	f.StringVar(&o.landing, "landing", "/rainfall_charts.html", "page opened in the browser")
}

// apply overrides cfg with every flag the user set explicitly.
func (o *serveOptions) apply(flags *pflag.FlagSet, cfg *server.Config) {
	if flags.Changed("host") {
		cfg.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("scan") {
		cfg.Scan = o.scan
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = o.maxAttempts
	}
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("root-mode") {
		cfg.RootMode = o.rootMode
	}
	if flags.Changed("open") {
		cfg.Open = o.open
	}
	if flags.Changed("landing") {
		cfg.Landing = o.landing
	}
}

func optionsFor(cmd *cobra.Command) *serveOptions {
	if cmd.HasParent() {
		return &serveOpts
	}
	return &rootServeOpts
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	optionsFor(cmd).apply(cmd.Flags(), &cfg.Server)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 3. Resolve the root and build the static feature
	root, err := cfg.Server.ResolveRoot()
	if err != nil {
		return err
	}
	cfg.Server.Root = root

	files, err := static.NewFeature(root, logg)
	if err != nil {
		return fmt.Errorf("failed to create static feature: %w", err)
	}

	// 4. Bind
	srv, err := server.Listen(cfg.Server, logg, files)
	if err != nil {
		return err
	}

	printBanner(cmd.OutOrStdout(), srv, cfg.Server)

	// 5. Best-effort browser launch
	if cfg.Server.Open {
		launcher := browser.NewLauncher(logg)
		go launcher.Open(srv.URL(cfg.Server.Landing))
	}

	// 6. Serve until interrupted
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nServer stopped by user")
	return nil
}

func init() {
	addServeFlags(serveCmd, &serveOpts)
	RootCmd.AddCommand(serveCmd)
}
