package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	runsTable       = "triage_runs"
	cataloguesTable = "catalogues"
)

var (
	// RunsColumns holds the columns for the "triage_runs" table.
	RunsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "catalogue_version", Type: field.TypeString},
		{Name: "top_condition", Type: field.TypeString, Nullable: true},
		{Name: "result_count", Type: field.TypeInt},
		{Name: "report", Type: field.TypeBytes},
	}
	// RunsTable holds the schema information for the "triage_runs" table.
	RunsTable = &schema.Table{
		Name:       runsTable,
		Columns:    RunsColumns,
		PrimaryKey: []*schema.Column{RunsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "triagerun_created_at",
				Unique:  false,
				Columns: []*schema.Column{RunsColumns[1]},
			},
		},
	}

	// CataloguesColumns holds the columns for the "catalogues" table.
	CataloguesColumns = []*schema.Column{
		{Name: "version", Type: field.TypeString},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "condition_count", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "document", Type: field.TypeBytes},
	}
	// CataloguesTable holds the schema information for the "catalogues" table.
	CataloguesTable = &schema.Table{
		Name:       cataloguesTable,
		Columns:    CataloguesColumns,
		PrimaryKey: []*schema.Column{CataloguesColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		RunsTable,
		CataloguesTable,
	}
)
