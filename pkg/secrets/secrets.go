// Package secrets resolves Onshape API credentials and document defaults
// for one session. Credentials are plain values handed to the client
// constructor; nothing here is cached process-wide.
package secrets

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Environment variables holding the Onshape API key pair.
const (
	EnvAccessKey = "ONSHAPE_ACCESS_KEY"
	EnvSecretKey = "ONSHAPE_SECRET_KEY"
)

// ErrNoCredentials is returned by Load when neither key is available and
// prompting is not wanted.
var ErrNoCredentials = errors.New("no API credentials found")

// Credentials is the session-scoped Onshape API key pair.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Load resolves credentials from the environment, falling back to the
// given .env file for whichever keys are unset or blank. A variable that
// is present but empty does not mask the file. It does not prompt; use
// Resolve for the interactive fallback.
func Load(envFile string) (Credentials, error) {
	accessKey := strings.TrimSpace(os.Getenv(EnvAccessKey))
	secretKey := strings.TrimSpace(os.Getenv(EnvSecretKey))

	if envFile != "" && (accessKey == "" || secretKey == "") {
		vars, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return Credentials{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
		if accessKey == "" {
			accessKey = strings.TrimSpace(vars[EnvAccessKey])
		}
		if secretKey == "" {
			secretKey = strings.TrimSpace(vars[EnvSecretKey])
		}
	}

	if accessKey == "" || secretKey == "" {
		return Credentials{}, ErrNoCredentials
	}
	return Credentials{AccessKey: accessKey, SecretKey: secretKey}, nil
}

// Resolve returns credentials from the environment or, failing that,
// prompts on the terminal. The secret key is read without echo.
func Resolve(envFile string) (Credentials, error) {
	creds, err := Load(envFile)
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, ErrNoCredentials) {
		return Credentials{}, err
	}
	return Prompt(os.Stdin, os.Stdout)
}

// Prompt interactively collects the API key pair. The access key is read
// normally; the secret key uses a no-echo terminal read when stdin is a
// terminal.
func Prompt(in *os.File, out *os.File) (Credentials, error) {
	fmt.Fprintln(out, "\nEnter your Onshape API keys (from the Developer Portal):")

	reader := bufio.NewReader(in)

	fmt.Fprint(out, "  Access Key: ")
	accessKey, err := reader.ReadString('\n')
	if err != nil {
		return Credentials{}, fmt.Errorf("read access key: %w", err)
	}
	accessKey = strings.TrimSpace(accessKey)

	var secretKey string
	fmt.Fprint(out, "  Secret Key: ")
	if term.IsTerminal(int(in.Fd())) {
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return Credentials{}, fmt.Errorf("read secret key: %w", err)
		}
		secretKey = strings.TrimSpace(string(raw))
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return Credentials{}, fmt.Errorf("read secret key: %w", err)
		}
		secretKey = strings.TrimSpace(line)
	}

	if accessKey == "" || secretKey == "" {
		return Credentials{}, ErrNoCredentials
	}
	return Credentials{AccessKey: accessKey, SecretKey: secretKey}, nil
}

// DocumentConfig supplies default document addressing for runs that omit
// the --doc-id flags.
type DocumentConfig struct {
	DocumentID  string `yaml:"documentId"`
	WorkspaceID string `yaml:"workspaceId"`
}

// LoadDocumentConfig reads a YAML document config. A missing file returns
// (nil, nil): the config is optional.
func LoadDocumentConfig(path string) (*DocumentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document config %s: %w", path, err)
	}

	var cfg DocumentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse document config %s: %w", path, err)
	}
	if cfg.DocumentID == "" || cfg.WorkspaceID == "" {
		return nil, nil
	}
	return &cfg, nil
}

// SaveDocumentConfig writes the document config as YAML.
func SaveDocumentConfig(cfg DocumentConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode document config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document config %s: %w", path, err)
	}
	return nil
}
