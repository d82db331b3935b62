package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/udt-flat/internal/parser"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "udt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDocument() *parser.Document {
	return &parser.Document{
		Name:        "Motor",
		Description: "Motor block",
		Version:     "2.0",
		Info:        "line 3",
		Elements: []parser.Element{
			{Name: "drive", Datatype: `"Drive"`, Comment: "main drive", Visible: true, Action: parser.ActionOpen},
			{Name: "drive.speed", Datatype: "Real", Visible: true, Access: true},
			{Name: "drive.", Action: parser.ActionClose},
			{Name: "enabled", Datatype: "Bool", Visible: true, Access: true},
		},
	}
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	want := sampleDocument()
	require.NoError(t, s.Save(ctx, want, "/plc/Motor.udt"))

	got, err := s.Load(ctx, "Motor")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, sampleDocument(), "/plc/Motor.udt"))

	updated := sampleDocument()
	updated.Version = "2.1"
	updated.Elements = updated.Elements[3:]
	require.NoError(t, s.Save(ctx, updated, "/plc/Motor.udt"))

	got, err := s.Load(ctx, "Motor")
	require.NoError(t, err)
	assert.Equal(t, "2.1", got.Version)
	assert.Len(t, got.Elements, 1)
}

func TestSQLiteStore_LoadNotFound(t *testing.T) {
	_, err := openTestStore(t).Load(context.Background(), "Nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteStore_EmptyDocument(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, &parser.Document{Name: "Empty", Elements: []parser.Element{}}, "/plc/Empty.udt"))
	got, err := s.Load(ctx, "Empty")
	require.NoError(t, err)
	assert.Empty(t, got.Elements)
	assert.NotNil(t, got.Elements)
}
