package migrations

import (
	_ "embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_leads.sql
var createLeadsSQL string

//go:embed 0002_create_admin_users.sql
var createAdminUsersSQL string

var Migrations = migrate.NewMigrations()
