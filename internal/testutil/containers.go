// containers.go
//
// Shared test fixtures for the notes service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/notesdb/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresUser     = "notes"
	postgresPassword = "notes"
	postgresDatabase = "notesdb"
)

// Postgres is a running Postgres container
type Postgres struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// StartPostgres starts image and waits until it accepts connections
func StartPostgres(ctx context.Context, image string) (*Postgres, error) {
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       postgresDatabase,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
				wait.ForListeningPort(port).WithStartupTimeout(60*time.Second),
			),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &Postgres{Container: c, Host: host, Port: mapped.Port()}, nil
}

// Config points a store at the container
func (p *Postgres) Config() *config.Config {
	return &config.Config{
		DBType:            "postgres",
		DBHost:            p.Host,
		DBPort:            p.Port,
		DBDatabase:        postgresDatabase,
		DBUser:            postgresUser,
		DBPassword:        postgresPassword,
		DBConnectionLimit: 5,
		LogLevel:          "info",
	}
}

// Env renders the container settings as .env lines
func (p *Postgres) Env() string {
	return fmt.Sprintf("DB_TYPE=postgres\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
		p.Host, p.Port, postgresDatabase, postgresUser, postgresPassword)
}

// Terminate stops and removes the container
func (p *Postgres) Terminate(ctx context.Context) error {
	return p.Container.Terminate(ctx)
}
