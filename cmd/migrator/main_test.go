package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"Postgres", "postgres://u:p@db:5432/zp", "pgx5://u:p@db:5432/zp"},
		{"Postgresql", "postgresql://db/zp?sslmode=disable", "pgx5://db/zp?sslmode=disable"},
		{"AlreadyPgx5", "pgx5://db/zp", "pgx5://db/zp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toPgx5URL(tt.dsn))
		})
	}
}
