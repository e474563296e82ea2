// Package config defines the configuration struct types shared across the
// application. Loading and defaults live in internal/infrastructure/config.
package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug test release"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction reports whether the server runs in the production deployment
// mode. Session renewal expiry is only enforced in this mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Mode == "release"
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username        string `mapstructure:"username" validate:"required"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" validate:"min=0"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" validate:"min=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" validate:"min=0"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"min=4,max=31"`
	// SessionRenewalHours is how long a session stays valid without renewal
	// before it must be renewed (production mode only).
	SessionRenewalHours int `mapstructure:"session_renewal_hours" validate:"min=1"`
}

type AppConfig struct {
	// WebsiteAppID is the id of the first-party website app. Logins against
	// any other app silently mint a companion session for this app.
	WebsiteAppID uint `mapstructure:"website_app_id"`
}
