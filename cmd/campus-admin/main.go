// ABOUTME: Admin CLI for campus-gateway user management
// ABOUTME: Talks to the HTTP API with JWT bearer authentication

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

const banner = `
                                                     _           _
  ___ __ _ _ __ ___  _ __  _   _ ___        __ _  __| |_ __ ___ (_)_ __
 / __/ _' | '_ ' _ \| '_ \| | | / __|_____ / _' |/ _' | '_ ' _ \| | '_ \
| (_| (_| | | | | | | |_) | |_| \__ \_____| (_| | (_| | | | | | | | | | |
 \___\__,_|_| |_| |_| .__/ \__,_|___/      \__,_|\__,_|_| |_| |_|_|_| |_|
                    |_|
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	baseURL := getBaseURL()
	token := getToken()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = cmdLogin(baseURL, args)
	case "register-admin":
		err = cmdRegisterAdmin(baseURL, args)
	case "users":
		err = cmdUsers(baseURL, token, args)
	case "status":
		err = cmdStatus(baseURL, token)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: campus-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  login --email <email> --password <pw>   Log in and save the access token")
	fmt.Println("  register-admin                          Register a new admin principal")
	fmt.Println("  users                                   List registered users")
	fmt.Println("  users list                              List registered users")
	fmt.Println("  users delete <id>                       Delete a user by ID")
	fmt.Println("  status                                  Show gateway status")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  CAMPUS_GATEWAY_URL   Gateway base URL (default: http://localhost:8080)")
	fmt.Println("  CAMPUS_TOKEN         Access token (default: ~/.config/campus/token)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  campus-admin login --email admin@example.edu --password ...")
	fmt.Println("  campus-admin users")
	fmt.Println("  campus-admin users delete 6f1c...")
	fmt.Println()
}

func getBaseURL() string {
	if url := os.Getenv("CAMPUS_GATEWAY_URL"); url != "" {
		return strings.TrimSuffix(url, "/")
	}
	return "http://localhost:8080"
}

// getToken returns the access token from CAMPUS_TOKEN or ~/.config/campus/token.
func getToken() string {
	if token := os.Getenv("CAMPUS_TOKEN"); token != "" {
		return token
	}

	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func tokenPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "token"
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "campus", "token")
}

// apiEnvelope mirrors the gateway's JSON response shape.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// call makes a JSON API request and decodes the response envelope.
func call(baseURL, token, method, path string, body any) (*apiEnvelope, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	return &env, nil
}

// cmdLogin authenticates and saves the access token for later commands.
func cmdLogin(baseURL string, args []string) error {
	var email, password string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email", "-e":
			if i+1 < len(args) {
				email = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				password = args[i+1]
				i++
			}
		}
	}

	if email == "" || password == "" {
		return fmt.Errorf("usage: login --email <email> --password <password>")
	}

	env, err := call(baseURL, "", http.MethodPost, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	var data struct {
		AccessToken string `json:"accessToken"`
		Role        string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}

	path := tokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(data.AccessToken), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Logged in as %s (%s)\n", email, data.Role)
	fmt.Printf("  Token saved: %s\n", path)

	return nil
}

// cmdRegisterAdmin creates a new admin principal.
func cmdRegisterAdmin(baseURL string, args []string) error {
	var name, email, phone, password string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--email", "-e":
			if i+1 < len(args) {
				email = args[i+1]
				i++
			}
		case "--phone":
			if i+1 < len(args) {
				phone = args[i+1]
				i++
			}
		case "--password", "-p":
			if i+1 < len(args) {
				password = args[i+1]
				i++
			}
		}
	}

	if name == "" || email == "" || phone == "" || password == "" {
		return fmt.Errorf("usage: register-admin --name <name> --email <email> --phone <phone> --password <password>")
	}

	env, err := call(baseURL, "", http.MethodPost, "/admin/register-admin", map[string]string{
		"fullName":    name,
		"email":       email,
		"phoneNumber": phone,
		"password":    password,
	})
	if err != nil {
		return err
	}

	var created struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Created admin: %s\n", created.ID)
	fmt.Printf("  Email: %s\n", created.Email)

	return nil
}

// cmdUsers handles user subcommands.
func cmdUsers(baseURL, token string, args []string) error {
	if token == "" {
		return fmt.Errorf("no access token: run 'campus-admin login' or set CAMPUS_TOKEN")
	}

	// Default to list
	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return cmdUsersList(baseURL, token)
	case "delete", "rm", "remove":
		return cmdUsersDelete(baseURL, token, args)
	default:
		return fmt.Errorf("unknown users subcommand: %s (use list, delete)", subcmd)
	}
}

// cmdUsersList lists registered users.
func cmdUsersList(baseURL, token string) error {
	env, err := call(baseURL, token, http.MethodGet, "/users/", nil)
	if err != nil {
		return err
	}

	var users []struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FullName  string `json:"fullName"`
		Course    string `json:"course"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(env.Data, &users); err != nil {
		return fmt.Errorf("decoding user list: %w", err)
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Registered Users")
	cyan.Println("  ----------------")

	if len(users) == 0 {
		fmt.Println("  (no users registered)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tEMAIL\tCOURSE\tCREATED")
	fmt.Fprintln(w, "  --\t----\t-----\t------\t-------")

	for _, u := range users {
		id := truncate(u.ID, 12)
		name := truncate(u.FullName, 24)
		email := truncate(u.Email, 28)
		created := u.CreatedAt
		if t, err := time.Parse(time.RFC3339, u.CreatedAt); err == nil {
			created = t.Format("Jan 02 15:04")
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", id, name, email, u.Course, created)
	}
	w.Flush()
	fmt.Println()

	return nil
}

// cmdUsersDelete deletes a user by ID.
func cmdUsersDelete(baseURL, token string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: users delete <user-id>")
	}

	userID := args[0]

	if _, err := call(baseURL, token, http.MethodDelete, "/users/"+userID, nil); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Deleted user: %s\n", userID)

	return nil
}

// cmdStatus shows gateway reachability and token state.
func cmdStatus(baseURL, token string) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()

	if _, err := call(baseURL, "", http.MethodGet, "/health", nil); err != nil {
		yellow.Printf("  Gateway:  ")
		color.Red("UNREACHABLE (%v)\n", err)
		return nil
	}

	green.Printf("  Gateway:  ")
	fmt.Printf("connected to %s\n", baseURL)

	if token != "" {
		if _, err := call(baseURL, token, http.MethodGet, "/users/", nil); err != nil {
			yellow.Printf("  Token:    ")
			color.Red("auth failed (%v)\n", err)
		} else {
			green.Printf("  Token:    ")
			fmt.Println("valid")
		}
	} else {
		yellow.Printf("  Token:    ")
		fmt.Println("(none - run 'campus-admin login')")
	}

	fmt.Println()
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
