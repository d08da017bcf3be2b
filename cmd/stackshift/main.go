package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stackshift/internal/engine"
	"stackshift/internal/logging"
	"stackshift/internal/model"
	"stackshift/internal/report"
	"stackshift/internal/source"
	"stackshift/internal/tui"
)

// parseSourceURL validates an http(s) portfolio URL and strips any userinfo
// out into separate credentials. The path and query survive untouched; the
// scheme must be http or https and the port, when given, must be in range.
func parseSourceURL(raw string) (baseURL, username, password string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: invalid URL %q: %v", model.ErrInvalidInput, raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", "", fmt.Errorf("%w: unsupported scheme %q (must be http or https)", model.ErrInvalidInput, u.Scheme)
	}

	if u.Hostname() == "" {
		return "", "", "", fmt.Errorf("%w: invalid URL %q: host is required", model.ErrInvalidInput, raw)
	}

	if port := u.Port(); port != "" {
		n, convErr := strconv.Atoi(port)
		if convErr != nil || n < 1 || n > 65535 {
			return "", "", "", fmt.Errorf("%w: invalid port %q in URL %q", model.ErrInvalidInput, port, raw)
		}
	}

	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		// Credentials travel in the request header, never in the stored URL.
		u.User = nil
	}

	return u.String(), username, password, nil
}

// resolveCredentials picks basic-auth credentials per field: flags win over
// environment variables, which win over URL userinfo.
func resolveCredentials(uriUser, uriPass, envUser, envPass, flagUser, flagPass string) (user, pass string) {
	user = uriUser
	if envUser != "" {
		user = envUser
	}
	if flagUser != "" {
		user = flagUser
	}

	pass = uriPass
	if envPass != "" {
		pass = envPass
	}
	if flagPass != "" {
		pass = flagPass
	}

	return user, pass
}

// resolveSourceLocation returns the portfolio location from the positional
// argument, falling back to the STACKSHIFT_SOURCE environment variable.
// Extra positional arguments are rejected; flag.Parse stops at the first
// non-flag argument, so trailing --flags would otherwise be silently ignored.
func resolveSourceLocation(args []string, envSource string) (string, error) {
	if len(args) > 1 {
		extra := args[1]
		if len(extra) > 1 && extra[0] == '-' {
			return "", fmt.Errorf("flag %q must be placed before the source", extra)
		}
		return "", fmt.Errorf("unexpected argument %q", extra)
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if envSource != "" {
		return envSource, nil
	}
	return "", errors.New("portfolio source is required (argument or STACKSHIFT_SOURCE)")
}

// fail prints err to stderr and exits non-zero: 2 when the failure was
// caused by invalid input, 1 for operational failures.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if errors.Is(err, model.ErrInvalidInput) {
		os.Exit(2)
	}
	os.Exit(1)
}

func main() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	var (
		outputFormat = flag.String("format", "", `one-shot report format: "text", "markdown", or "json" (omit for the dashboard)`)
		outPath      = flag.String("out", "", "write the one-shot report to this file instead of stdout")
		watch        = flag.Duration("watch", 0, "dashboard auto-refresh interval (e.g. 30s, 5m; 0 disables)")
		timeout      = flag.Duration("timeout", 10*time.Second, "request timeout for http(s) sources")
		insecure     = flag.Bool("insecure", false, "skip TLS certificate verification")
		username     = flag.String("user", "", "basic auth username for http(s) sources")
		password     = flag.String("password", "", "basic auth password for http(s) sources")
		debug        = flag.Bool("debug", false, "debug logging (the dashboard logs to a file)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: stackshift [flags] <portfolio-file | - | http(s)-url>\n\n")
		fmt.Fprintf(os.Stderr, "examples:\n")
		fmt.Fprintf(os.Stderr, "  stackshift portfolio.yaml\n")
		fmt.Fprintf(os.Stderr, "  stackshift --watch 30s https://inventory.internal/portfolio\n")
		fmt.Fprintf(os.Stderr, "  stackshift --format markdown --out report.md portfolio.json\n")
		fmt.Fprintf(os.Stderr, "  cat service.env | stackshift --format text -\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *watch < 0 {
		fmt.Fprintln(os.Stderr, "error: --watch must not be negative")
		os.Exit(2)
	}
	if *timeout <= 0 {
		fmt.Fprintln(os.Stderr, "error: --timeout must be positive")
		os.Exit(2)
	}

	location, err := resolveSourceLocation(flag.Args(), os.Getenv("STACKSHIFT_SOURCE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	var uriUser, uriPass string
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		location, uriUser, uriPass, err = parseSourceURL(location)
		if err != nil {
			fail(err)
		}
	}
	user, pass := resolveCredentials(uriUser, uriPass,
		os.Getenv("STACKSHIFT_USERNAME"), os.Getenv("STACKSHIFT_PASSWORD"),
		*username, *password)

	src, err := source.Open(source.Config{
		Location:           location,
		Username:           user,
		Password:           pass,
		InsecureSkipVerify: *insecure,
		RequestTimeout:     *timeout,
	})
	if err != nil {
		fail(err)
	}

	if *outputFormat != "" {
		if *watch > 0 {
			fmt.Fprintln(os.Stderr, "error: --watch only applies to the dashboard")
			os.Exit(2)
		}
		runReport(src, *outputFormat, *outPath, *debug)
		return
	}

	// The dashboard reads keys from stdin, so the portfolio cannot also
	// come from there.
	if location == "-" {
		fmt.Fprintln(os.Stderr, "error: stdin source requires --format (the dashboard reads keys from stdin)")
		os.Exit(2)
	}
	runDashboard(src, *watch, *debug)
}

// runReport fetches the portfolio once, evaluates it, and writes the
// rendered report to stdout or the --out path.
func runReport(src source.Source, outputFormat, outPath string, debug bool) {
	level := os.Getenv("STACKSHIFT_LOG_LEVEL")
	if debug {
		level = "debug"
	}
	logger := logging.New(level, "console")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	p, err := src.Fetch(ctx)
	if err != nil {
		logger.Error("fetch failed", zap.String("origin", src.Origin()), zap.Error(err))
		fail(err)
	}
	logger.Debug("portfolio fetched",
		zap.String("origin", src.Origin()),
		zap.Int("services", len(p.Services)))

	assessments, err := engine.EvaluateAll(ctx, p)
	if err != nil {
		fail(err)
	}

	out, err := report.New(src.Origin(), p, assessments).Render(outputFormat)
	if err != nil {
		fail(err)
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
			fail(fmt.Errorf("write report: %w", err))
		}
		logger.Info("report written",
			zap.String("path", outPath),
			zap.String("format", outputFormat),
			zap.Int("services", len(assessments)))
		return
	}
	fmt.Print(out)
}

// runDashboard starts the interactive dashboard. Logs go to a file when
// --debug is set because the dashboard owns the terminal.
func runDashboard(src source.Source, watch time.Duration, debug bool) {
	logger := zap.NewNop()
	if debug {
		path := filepath.Join(os.TempDir(), "stackshift.log")
		fileLogger, err := logging.NewFile(path, "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open debug log: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "debug log: %s\n", path)
		logger = fileLogger
	}
	defer func() { _ = logger.Sync() }()

	app := tui.NewApp(src, watch, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
