package model

import "strconv"

// Reference data owned by the backend, fetched once per console start and
// treated as read-only.

type Ministry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DataType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Role struct {
	ID       int    `json:"id"`
	RoleName string `json:"role_name"`
}

// Option is an id/label pair consumed by form selects.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	ID    int    `json:"id"`
}

// MinistryOptions maps the fetched ministries to form options.
func MinistryOptions(ministries []Ministry) []Option {
	options := make([]Option, 0, len(ministries))
	for _, m := range ministries {
		options = append(options, Option{Value: strconv.Itoa(m.ID), Label: m.Name, ID: m.ID})
	}
	return options
}

// DataTypeOptions maps the fetched data types to form options.
func DataTypeOptions(types []DataType) []Option {
	options := make([]Option, 0, len(types))
	for _, t := range types {
		options = append(options, Option{Value: strconv.Itoa(t.ID), Label: t.Name, ID: t.ID})
	}
	return options
}
