package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a wrapper around gorm.io/datatypes.JSON to allow for custom data type mapping
type JSON struct {
	datatypes.JSON
}

// StringsJSON encodes a list of strings. An empty list encodes as SQL NULL.
func StringsJSON(values []string) JSON {
	if len(values) == 0 {
		return JSON{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return JSON{}
	}
	return JSON{JSON: datatypes.JSON(raw)}
}

// Strings decodes the value as a list of strings, returning nil for NULL or any other shape.
func (j JSON) Strings() []string {
	if len(j.JSON) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(j.JSON, &values); err != nil {
		return nil
	}
	return values
}

// Value promotes the embedded JSON's Value method
func (j JSON) Value() (driver.Value, error) {
	if len(j.JSON) == 0 {
		return nil, nil
	}
	return j.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method, treating NULL as empty
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		j.JSON = nil
		return nil
	}
	return j.JSON.Scan(value)
}

// MarshalJSON renders an empty value as null
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j.JSON) == 0 {
		return []byte("null"), nil
	}
	return j.JSON.MarshalJSON()
}

// UnmarshalJSON keeps the raw document
func (j *JSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		j.JSON = nil
		return nil
	}
	return j.JSON.UnmarshalJSON(data)
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
