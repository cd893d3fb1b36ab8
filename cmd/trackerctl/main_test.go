package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEnv(t *testing.T) {
	env := map[string]string{
		"DATABASE_URL": "postgres://tracker:hunter2@db:5432/tracker",
		"SMTP_USER":    "bot@example.com",
		"PORT":         "9000",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	var out bytes.Buffer
	missing := checkEnv(&out, lookup)

	assert.Equal(t, []string{"SMTP_PASS"}, missing)
	text := out.String()
	assert.Contains(t, text, "SMTP_PASS            MISSING (required)")
	assert.Contains(t, text, "PORT                 set (9000)")
	assert.NotContains(t, text, "hunter2", "secrets must be masked")
	assert.Contains(t, text, "DATABASE_URL         set (42 chars)")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "3 chars", mask("abc"))
	assert.Equal(t, "6 chars", mask("hunter"))
	assert.Equal(t, "6 chars", mask("пароль"))
	assert.Equal(t, "0 chars", mask(""))
}

func TestDumpCmd_RejectsUnknownTable(t *testing.T) {
	cmd := newDumpCmd()
	cmd.SetArgs([]string{"pg_shadow"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown table"))
}

func TestRowToMap(t *testing.T) {
	id := uuid.New()
	fields := []pgconn.FieldDescription{{Name: "id"}, {Name: "pc_name"}}

	got := rowToMap(fields, []any{[16]byte(id), "PC-1"})

	assert.Equal(t, map[string]any{"id": id.String(), "pc_name": "PC-1"}, got)
}
