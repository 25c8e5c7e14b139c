package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		tax_number VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'VIEWER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (LOWER(email));`,
	`CREATE INDEX IF NOT EXISTS idx_users_company_id ON users (company_id);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		contact_person VARCHAR(255) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_clients_company_id ON clients (company_id);`,
	`CREATE TABLE IF NOT EXISTS sites (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		name VARCHAR(255) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city VARCHAR(128) NOT NULL DEFAULT '',
		postcode VARCHAR(32) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_sites_company_id ON sites (company_id);`,
	`CREATE INDEX IF NOT EXISTS idx_sites_client_id ON sites (client_id);`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		trade VARCHAR(128) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		hourly_rate NUMERIC(18,2) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contractors_company_id ON contractors (company_id);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		site_id UUID NOT NULL REFERENCES sites(id) ON DELETE RESTRICT,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'PLANNED',
		start_date DATE,
		end_date DATE,
		budget NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_company_id ON projects (company_id);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_site_id ON projects (site_id);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (company_id, status);`,
	`CREATE TABLE IF NOT EXISTS project_contractors (
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		contractor_id UUID NOT NULL REFERENCES contractors(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, contractor_id)
	);`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		contractor_id UUID REFERENCES contractors(id) ON DELETE RESTRICT,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'TODO',
		priority VARCHAR(16) NOT NULL DEFAULT 'MEDIUM',
		due_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_contractor_id ON tasks (contractor_id) WHERE contractor_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS project_updates (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		author_id UUID REFERENCES users(id) ON DELETE SET NULL,
		body TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		summarized_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_project_updates_project_id ON project_updates (project_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS units (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name VARCHAR(64) NOT NULL,
		symbol VARCHAR(16) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_units_company_symbol ON units (company_id, symbol);`,
	`CREATE TABLE IF NOT EXISTS quotations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		site_id UUID REFERENCES sites(id) ON DELETE SET NULL,
		project_id UUID REFERENCES projects(id) ON DELETE SET NULL,
		number VARCHAR(32) NOT NULL,
		title VARCHAR(255) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'DRAFT',
		issue_date DATE NOT NULL,
		valid_until DATE NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		total NUMERIC(18,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quotations_company_number ON quotations (company_id, number);`,
	`CREATE INDEX IF NOT EXISTS idx_quotations_client_id ON quotations (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_quotations_status_valid_until ON quotations (status, valid_until);`,
	`CREATE TABLE IF NOT EXISTS quotation_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		quotation_id UUID NOT NULL REFERENCES quotations(id) ON DELETE CASCADE,
		unit_id UUID REFERENCES units(id) ON DELETE RESTRICT,
		position INTEGER NOT NULL,
		description TEXT NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		rate NUMERIC(18,2) NOT NULL,
		area NUMERIC(18,3) NOT NULL DEFAULT 0,
		amount NUMERIC(18,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quotation_items_quotation_id ON quotation_items (quotation_id, position);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
