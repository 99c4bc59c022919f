package data

import (
	_ "embed"
)

// InitdbMariaDBTables creates the movieapp tables on MariaDB or MySQL
//
//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

// InitdbMariaDBPrivileges grants the application user access to the movieapp tables.
// The %[1]s and %[2]s verbs are the database and user names.
//
//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string
