// containers.go
//
// A show, binge and tag tracking service with JWT auth and TMDB lookup
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieapp.
// movieapp is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieapp is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieapp.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/movieapp/data"
	"github.com/localnerve/movieapp/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MariaDB is a running MariaDB container initialized with the movieapp schema
type MariaDB struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

// Config returns a server configuration pointing at the container
func (m *MariaDB) Config() *config.Config {
	return &config.Config{
		Port:              "3000",
		DBType:            "mariadb",
		DBHost:            m.Host,
		DBPort:            m.Port,
		DBDatabase:        m.Database,
		DBUser:            m.User,
		DBPassword:        m.Password,
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		JWTSecret:         "testcontainers-secret",
		JWTIssuer:         "movieapp",
		JWTAudience:       "movieapp-api",
		JWTTTL:            time.Hour,
		ShowIDPolicy:      config.ShowIDPolicyTitle,
	}
}

// Terminate stops the container
func (m *MariaDB) Terminate(t *testing.T) {
	if m == nil || m.Container == nil {
		return
	}
	if err := m.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate MariaDB: %v", err)
	}
}

// StartMariaDB starts the DB_IMAGE container, creates the application database and user,
// and runs the embedded DDL. t may be nil when called from a standalone executable.
func StartMariaDB(ctx context.Context, t *testing.T) (*MariaDB, error) {
	dbImage := os.Getenv("DB_IMAGE")
	if dbImage == "" {
		return nil, fmt.Errorf("DB_IMAGE is not set")
	}

	m := &MariaDB{
		Database: getEnv("DB_DATABASE", "movieapp"),
		User:     getEnv("DB_USER", "movieapp"),
		Password: getEnv("DB_PASSWORD", "movieapp-secret"),
	}
	rootPassword := getEnv("DB_ROOT_PASSWORD", "root-secret")

	cached, err := imageExists(ctx, dbImage)
	if err != nil {
		logMessage(t, "Could not inspect local images: %v", err)
	} else if cached {
		logMessage(t, "Image %s exists, reusing...", dbImage)
	} else {
		logMessage(t, "Image %s does not exist, pulling...", dbImage)
	}

	tcpDbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      m.Database,
				"MYSQL_USER":          m.User,
				"MYSQL_PASSWORD":      m.Password,
			},
			HostConfigModifier: func(hostConfig *container.HostConfig) {
				// The data directory is throwaway
				hostConfig.Tmpfs = map[string]string{"/var/lib/mysql": "rw"}
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}
	m.Container = dbContainer

	m.Host, err = dbContainer.Host(ctx)
	if err != nil {
		m.Terminate(t)
		return nil, fmt.Errorf("failed to get MariaDB host: %w", err)
	}
	mappedPort, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		m.Terminate(t)
		return nil, fmt.Errorf("failed to get MariaDB port: %w", err)
	}
	m.Port = mappedPort.Port()

	if err := m.initialize(rootPassword); err != nil {
		m.Terminate(t)
		return nil, err
	}

	logMessage(t, "MariaDB testcontainer started at %s:%s", m.Host, m.Port)
	return m, nil
}

func (m *MariaDB) initialize(rootPassword string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/%s", rootPassword, m.Host, m.Port, m.Database))
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("failed to execute tables init sql: %w", err)
	}
	if err := executeSQL(db, fmt.Sprintf(data.InitdbMariaDBPrivileges, m.Database, m.User)); err != nil {
		return fmt.Errorf("failed to execute privileges init sql: %w", err)
	}
	return nil
}

func executeSQL(db *sql.DB, sql string) error {
	lines := strings.Split(sql, "\n")

	var ncls []string
	for _, l := range lines {
		ncls = append(ncls, excludeComment(l))
	}

	queries := strings.Split(strings.Join(ncls, "\n"), ";")
	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

// excludeComment strips a trailing -- comment that is not inside a quoted string
func excludeComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '-' && strings.HasPrefix(line[i:], "--"):
			return line[:i]
		}
	}
	return line
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
