// Package config holds the application configuration tree. It is loaded
// once at startup through go-config and handed to the rest of the app as
// read-only values.
package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// App is the configuration root. Values come from config files and
// environment overrides resolved by go-config.
type App struct {
	Name        string      `json:"name" yaml:"name"`
	Environment string      `json:"environment" yaml:"environment"`
	Server      Server      `json:"server" yaml:"server"`
	Auth        Auth        `json:"auth" yaml:"auth"`
	Persistence Persistence `json:"persistence" yaml:"persistence"`
	Files       Files       `json:"files" yaml:"files"`
	Logging     Logging     `json:"logging" yaml:"logging"`
}

// Validate rejects configurations the server must not start with. A
// missing signing secret is fatal; there is no generated fallback key.
func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Server, validation.Required),
		validation.Field(&a.Auth, validation.Required),
	)
}

func (a App) GetName() string {
	if a.Name == "" {
		return "classroom"
	}
	return a.Name
}

func (a App) GetEnvironment() string {
	if a.Environment == "" {
		return "development"
	}
	return a.Environment
}

func (a App) GetServer() Server           { return a.Server }
func (a App) GetAuth() Auth               { return a.Auth }
func (a App) GetPersistence() Persistence { return a.Persistence }
func (a App) GetFiles() Files             { return a.Files }
func (a App) GetLogging() Logging         { return a.Logging }

type Server struct {
	Port string `json:"port" yaml:"port"`
}

// Validate will validate the section
func (s Server) Validate() error {
	return nil
}

func (s Server) GetPort() string {
	if s.Port == "" {
		return "9876"
	}
	return s.Port
}

// Auth satisfies the auth Config interface consumed by the token
// service and credential codec.
type Auth struct {
	SigningKey      string   `json:"signing_key" yaml:"signing_key"`
	TokenExpiration int      `json:"token_expiration" yaml:"token_expiration"`
	Issuer          string   `json:"issuer" yaml:"issuer"`
	Audience        []string `json:"audience" yaml:"audience"`
	ContextKey      string   `json:"context_key" yaml:"context_key"`
	AuthScheme      string   `json:"auth_scheme" yaml:"auth_scheme"`
	BcryptCost      int      `json:"bcrypt_cost" yaml:"bcrypt_cost"`
}

// Validate will validate the section
func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required, validation.Length(16, 0)),
	)
}

func (a Auth) GetSigningKey() string { return a.SigningKey }

func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration <= 0 {
		return 24
	}
	return a.TokenExpiration
}

func (a Auth) GetIssuer() string     { return a.Issuer }
func (a Auth) GetAudience() []string { return a.Audience }

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

func (a Auth) GetAuthScheme() string {
	if a.AuthScheme == "" {
		return "Bearer"
	}
	return a.AuthScheme
}

func (a Auth) GetBcryptCost() int {
	if a.BcryptCost <= 0 {
		return 10
	}
	return a.BcryptCost
}

type Persistence struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

// Validate will validate the section
func (p Persistence) Validate() error {
	return nil
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file:classroom.db?cache=shared&_pragma=foreign_keys(1)"
	}
	return p.DSN
}

type Files struct {
	BaseDir string `json:"base_dir" yaml:"base_dir"`
}

// Validate will validate the section
func (f Files) Validate() error {
	return nil
}

func (f Files) GetBaseDir() string {
	if f.BaseDir == "" {
		return "./data/files"
	}
	return f.BaseDir
}

type Logging struct {
	Level string `json:"level" yaml:"level"`
}

// Validate will validate the section
func (l Logging) Validate() error {
	return nil
}

func (l Logging) GetLevel() string {
	if l.Level == "" {
		return "debug"
	}
	return l.Level
}
