// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/storelens/internal/config"
)

const (
	DefaultPostgresImage = "postgres:16-alpine"
	DefaultMySQLImage    = "mysql:8.4"

	// SeedTable holds SeedRows in every container.
	SeedTable = "transactions"

	testUser     = "storelens"
	testPassword = "storelens"
	testDatabase = "shop"
)

// SeedRows are inserted into the transactions table of every container.
// Three customers, four orders, two months.
var SeedRows = []string{
	"('1001', '17850', 'Desk Lamp', 'Home', '2024-01-05 10:00:00', 39.50, 'Berlin', 'Germany')",
	"('1002', '17850', 'Mug', 'Kitchen', '2024-01-20 12:30:00', 8.00, 'Berlin', 'Germany')",
	"('1003', '13047', 'Mug', 'Kitchen', '2024-02-11 09:15:00', 16.00, 'Lyon', 'France')",
	"('1004', '12583', 'Desk Lamp', 'Home', '2024-02-28 18:45:00', 39.50, 'Porto', 'Portugal')",
}

// seedSQL builds the schema and seed statements for a dialect's timestamp type.
func seedSQL(timestampType string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
	OrderID VARCHAR(32) NOT NULL,
	CustomerID VARCHAR(32) NOT NULL,
	ProductName VARCHAR(200) NOT NULL,
	CategoryName VARCHAR(100) NOT NULL,
	OrderDate %s NOT NULL,
	TotalAmount DECIMAL(10,2) NOT NULL,
	City VARCHAR(100),
	Country VARCHAR(100)
);
INSERT INTO %s VALUES
%s;
`, SeedTable, timestampType, SeedTable, strings.Join(SeedRows, ",\n"))
}

// DatabaseContainer is a running, seeded database server.
type DatabaseContainer struct {
	testcontainers.Container
	Driver string
	DSN    string
}

// DatabaseOption configures a database container.
type DatabaseOption func(*databaseConfig)

type databaseConfig struct {
	image        string
	startTimeout time.Duration
}

// WithImage sets a custom Docker image.
func WithImage(image string) DatabaseOption {
	return func(c *databaseConfig) {
		c.image = image
	}
}

// WithStartTimeout sets the timeout for waiting for the server to start.
func WithStartTimeout(timeout time.Duration) DatabaseOption {
	return func(c *databaseConfig) {
		c.startTimeout = timeout
	}
}

func newDatabaseConfig(image string, opts []DatabaseOption) *databaseConfig {
	cfg := &databaseConfig{image: image, startTimeout: 90 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewPostgresContainer starts PostgreSQL with the seeded transactions table.
// Unquoted identifiers fold to lower case, which the source matches
// case-insensitively.
func NewPostgresContainer(ctx context.Context, opts ...DatabaseOption) (*DatabaseContainer, error) {
	cfg := newDatabaseConfig(DefaultPostgresImage, opts)

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDatabase,
			"TZ":                "UTC",
		},
		Files: []testcontainers.ContainerFile{{
			Reader:            strings.NewReader(seedSQL("TIMESTAMP")),
			ContainerFilePath: "/docker-entrypoint-initdb.d/01-seed.sql",
			FileMode:          0o644,
		}},
		// The init script runs against a temporary server, so the ready line
		// appears twice.
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	mapped, err := container.MappedPort(ctx, "5432")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}
	hostPort, err := endpoint(ctx, container, mapped.Port())
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, err
	}

	return &DatabaseContainer{
		Container: container,
		Driver:    config.DriverPostgres,
		DSN:       fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", testUser, testPassword, hostPort, testDatabase),
	}, nil
}

// NewMySQLContainer starts MySQL with the seeded transactions table.
func NewMySQLContainer(ctx context.Context, opts ...DatabaseOption) (*DatabaseContainer, error) {
	cfg := newDatabaseConfig(DefaultMySQLImage, opts)

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": testPassword,
			"MYSQL_USER":          testUser,
			"MYSQL_PASSWORD":      testPassword,
			"MYSQL_DATABASE":      testDatabase,
			"TZ":                  "UTC",
		},
		Files: []testcontainers.ContainerFile{{
			Reader:            strings.NewReader(seedSQL("DATETIME")),
			ContainerFilePath: "/docker-entrypoint-initdb.d/01-seed.sql",
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("3306/tcp"),
			wait.ForLog("port: 3306  MySQL Community Server"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create mysql container: %w", err)
	}

	mapped, err := container.MappedPort(ctx, "3306")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}
	hostPort, err := endpoint(ctx, container, mapped.Port())
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, err
	}

	return &DatabaseContainer{
		Container: container,
		Driver:    config.DriverMySQL,
		DSN:       fmt.Sprintf("mysql://%s:%s@%s/%s", testUser, testPassword, hostPort, testDatabase),
	}, nil
}

// endpoint joins the container host with a mapped port.
func endpoint(ctx context.Context, container testcontainers.Container, port string) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	return fmt.Sprintf("%s:%s", host, port), nil
}
