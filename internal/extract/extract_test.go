package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	localstore "resume-builder/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(doc.String())); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextFromBytesPlainText(t *testing.T) {
	got, err := TextFromBytes(context.Background(), []byte("  Ada Lovelace\nProgrammer  "), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "Ada Lovelace\nProgrammer" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextFromBytesDocx(t *testing.T) {
	data := buildDocx(t, []string{"Ada Lovelace", "Programmer at Analytical Engines Ltd"})

	got, err := TextFromBytes(context.Background(), data,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "Ada Lovelace") || !strings.Contains(got, "Analytical Engines") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextFromBytesSniffsDocxFromGenericMime(t *testing.T) {
	data := buildDocx(t, []string{"hello"})

	if _, err := TextFromBytes(context.Background(), data, "application/octet-stream", "resume.docx"); err != nil {
		t.Fatalf("expected docx sniffed from zip payload, got %v", err)
	}
}

func TestTextFromBytesRejectsPlainZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = TextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestTextPersistsExtractedCopy(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(t.TempDir())

	key, _, _, err := store.Save(ctx, "owner", "resume.txt", strings.NewReader("Ada Lovelace"))
	if err != nil {
		t.Fatalf("save upload: %v", err)
	}

	got, err := Text(ctx, store, key, "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "Ada Lovelace" {
		t.Fatalf("unexpected text %q", got)
	}

	rc, err := store.Open(ctx, key+".extracted.txt")
	if err != nil {
		t.Fatalf("expected derived copy, got %v", err)
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		t.Fatalf("read derived copy: %v", err)
	}
	if buf.String() != "Ada Lovelace" {
		t.Fatalf("derived copy = %q", buf.String())
	}
}
