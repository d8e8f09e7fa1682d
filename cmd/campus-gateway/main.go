// ABOUTME: Entry point for the campus-gateway API server
// ABOUTME: Serves the user, admin, contact, and PDF endpoints

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/campus-gateway/internal/auth"
	"github.com/2389/campus-gateway/internal/config"
	"github.com/2389/campus-gateway/internal/mail"
	"github.com/2389/campus-gateway/internal/server"
	"github.com/2389/campus-gateway/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  ___ __ _ _ __ ___  _ __  _   _ ___       __ _  __ _| |_ ___ _      ____ _ _   _
 / __/ _' | '_ ' _ \| '_ \| | | / __|____ / _' |/ _' | __/ _ \ \ /\ / / _' | | | |
| (_| (_| | | | | | | |_) | |_| \__ \____| (_| | (_| | ||  __/\ V  V / (_| | |_| |
 \___\__,_|_| |_| |_| .__/ \__,_|___/     \__, |\__,_|\__\___| \_/\_/ \__,_|\__, |
                    |_|                   |___/                             |___/
`

// getConfigPath returns the path to the gateway config file.
// Priority: CAMPUS_CONFIG env var > XDG_CONFIG_HOME/campus/gateway.yaml > ~/.config/campus/gateway.yaml
func getConfigPath() string {
	if envPath := os.Getenv("CAMPUS_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "gateway.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "campus", "gateway.yaml")
}

// getDataPath returns the path to the campus data directory.
// Priority: XDG_DATA_HOME/campus > ~/.local/share/campus
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "campus")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: campus-gateway <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the gateway server")
		fmt.Println("  init     Create a new config file interactively")
		fmt.Println("  health   Check gateway health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	// Version info
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)

	// Startup info
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	if cfg.PDFs.Dir != "" {
		green.Print("    ▶ ")
		fmt.Printf("PDFs:     %s\n", cfg.PDFs.Dir)
	}
	green.Print("    ▶ ")
	fmt.Printf("Mail:     ")
	if cfg.Mail.Enabled {
		cyan.Printf("%s:%d\n", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		yellow.Print("disabled\n")
	}

	fmt.Println()

	logger.Info("starting campus-gateway",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"environment", cfg.Server.Environment,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	}

	authSvc := auth.NewService(st, cfg.Auth, logger)
	srv := server.New(cfg, st, authSvc, mailer, logger)

	return srv.Run(ctx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	// Format timestamp
	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	// Colorize level
	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	// Print message
	buf.WriteString(r.Message)

	// Print handler-level attrs first (from WithAttrs)
	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	// Print record attrs
	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Make HTTP request to health endpoint with context
	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("campus-gateway configuration setup")
	fmt.Println("==================================")
	fmt.Println()

	// Default paths
	defaultConfigPath := getConfigPath()
	defaultDataPath := getDataPath()
	defaultDbPath := filepath.Join(defaultDataPath, "gateway.db")
	defaultPdfPath := filepath.Join(defaultDataPath, "pdfs")

	// Output filename
	outputFile := prompt(reader, "Config file path", defaultConfigPath)

	// Check if file exists
	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, "File exists. Overwrite?", "no")
		if strings.ToLower(overwrite) != "yes" && strings.ToLower(overwrite) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Server configuration
	fmt.Println("\n--- Server Configuration ---")
	httpAddr := prompt(reader, "HTTP address", "localhost:8080")
	environment := prompt(reader, "Environment (development/production)", "development")

	// Database
	fmt.Println("\n--- Database Configuration ---")
	dbPath := prompt(reader, "SQLite database path", defaultDbPath)

	// Auth secrets: generated rather than prompted so nobody types one in
	accessSecret, err := randomSecret()
	if err != nil {
		return fmt.Errorf("generating access secret: %w", err)
	}
	refreshSecret, err := randomSecret()
	if err != nil {
		return fmt.Errorf("generating refresh secret: %w", err)
	}

	// Mail
	fmt.Println("\n--- Mail Configuration ---")
	enableMail := prompt(reader, "Enable contact-form mail?", "no")
	mailEnabled := strings.ToLower(enableMail) == "yes" || strings.ToLower(enableMail) == "y"

	var mailHost, mailPort, mailTo string
	if mailEnabled {
		mailHost = prompt(reader, "SMTP host", "smtp.gmail.com")
		mailPort = prompt(reader, "SMTP port", "587")
		mailTo = prompt(reader, "Contact mailbox", "")
	}

	// PDFs
	fmt.Println("\n--- PDF Configuration ---")
	pdfDir := prompt(reader, "PDF directory", defaultPdfPath)

	// Logging
	fmt.Println("\n--- Logging Configuration ---")
	logLevel := prompt(reader, "Log level (debug/info/warn/error)", "info")
	logFormat := prompt(reader, "Log format (text/json)", "text")

	// Generate config
	var cfg strings.Builder
	cfg.WriteString("# campus-gateway configuration\n")
	cfg.WriteString("# Generated by campus-gateway init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  http_addr: \"%s\"\n", httpAddr))
	cfg.WriteString(fmt.Sprintf("  environment: \"%s\"\n", environment))
	cfg.WriteString("\n")

	cfg.WriteString("database:\n")
	cfg.WriteString(fmt.Sprintf("  path: \"%s\"\n", dbPath))
	cfg.WriteString("\n")

	cfg.WriteString("auth:\n")
	cfg.WriteString(fmt.Sprintf("  access_secret: \"%s\"\n", accessSecret))
	cfg.WriteString(fmt.Sprintf("  refresh_secret: \"%s\"\n", refreshSecret))
	cfg.WriteString("  access_token_ttl: \"15m\"\n")
	cfg.WriteString("  refresh_token_ttl: \"168h\"\n")
	cfg.WriteString("\n")

	cfg.WriteString("mail:\n")
	cfg.WriteString(fmt.Sprintf("  enabled: %t\n", mailEnabled))
	if mailEnabled {
		cfg.WriteString(fmt.Sprintf("  host: \"%s\"\n", mailHost))
		cfg.WriteString(fmt.Sprintf("  port: %s\n", mailPort))
		cfg.WriteString("  username: \"${CAMPUS_MAIL_USER}\"\n")
		cfg.WriteString("  password: \"${CAMPUS_MAIL_PASS}\"\n")
		cfg.WriteString(fmt.Sprintf("  to: \"%s\"\n", mailTo))
	}
	cfg.WriteString("\n")

	cfg.WriteString("pdfs:\n")
	cfg.WriteString(fmt.Sprintf("  dir: \"%s\"\n", pdfDir))
	cfg.WriteString("\n")

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: \"%s\"\n", logLevel))
	cfg.WriteString(fmt.Sprintf("  format: \"%s\"\n", logFormat))

	// Ensure config directory exists
	configDir := filepath.Dir(outputFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Config holds signing secrets, keep it private
	if err := os.WriteFile(outputFile, []byte(cfg.String()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Ensure data and PDF directories exist
	dataDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(pdfDir, 0755); err != nil {
		return fmt.Errorf("creating PDF directory: %w", err)
	}

	fmt.Printf("\nConfig written to %s\n", outputFile)
	fmt.Printf("Data directory: %s\n", dataDir)
	fmt.Println("\nTo start the server:")
	fmt.Printf("  campus-gateway serve\n")

	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", question, defaultVal)
	} else {
		fmt.Printf("%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		// On EOF or error, return default
		fmt.Println()
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
