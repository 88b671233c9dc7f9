package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

const (
	OracleModeStatic = "static"
	OracleModeRedis  = "redis"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// "static" serves OracleStaticPrice; "redis" reads the quote a feeder
	// publishes under OracleRedisKey
	OracleMode        string
	OracleStaticPrice uint64 // USD cents per SOL
	OracleRedisKey    string

	// USDC smallest units minted into the treasury pool on first boot
	PoolInitialSupply uint64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lendvault"),
		MySQLUser: getenv("MYSQL_USER", "lendvault"),
		MySQLPass: getenv("MYSQL_PASS", "lendvault"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		OracleMode:        getenv("ORACLE_MODE", OracleModeStatic),
		OracleStaticPrice: 15000, // $150.00 per SOL
		OracleRedisKey:    getenv("ORACLE_REDIS_KEY", "oracle:sol_usd"),

		PoolInitialSupply: 1_000_000_000_000, // 1,000,000 USDC
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("ORACLE_STATIC_PRICE"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.OracleStaticPrice = n
		}
	}
	if v := os.Getenv("POOL_INITIAL_SUPPLY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.PoolInitialSupply = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.OracleMode {
	case OracleModeStatic:
		if c.OracleStaticPrice == 0 {
			return errors.New("ORACLE_STATIC_PRICE must be > 0 in static mode")
		}
	case OracleModeRedis:
		if c.OracleRedisKey == "" {
			return errors.New("missing ORACLE_REDIS_KEY in redis mode")
		}
	default:
		return fmt.Errorf("unknown ORACLE_MODE %q", c.OracleMode)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
