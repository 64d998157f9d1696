package menu

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TextExtractor turns an uploaded menu file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, body []byte) (string, error)
}

// PDFToText shells out to poppler's pdftotext. Plain .txt uploads are
// passed through untouched.
type PDFToText struct {
	Binary string
}

func NewPDFToText() PDFToText {
	return PDFToText{Binary: "pdftotext"}
}

// Available reports whether the binary is on PATH.
func (p PDFToText) Available() bool {
	_, err := exec.LookPath(p.Binary)
	return err == nil
}

// IsPlainText reports whether the file is read as-is, without pdftotext.
func IsPlainText(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".txt"
}

func (p PDFToText) Extract(ctx context.Context, filename string, body []byte) (string, error) {
	if IsPlainText(filename) {
		return string(body), nil
	}

	tmp, err := os.CreateTemp("", "menu-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// "-" writes to stdout; -layout keeps name and price on one line
	out, err := exec.CommandContext(ctx, p.Binary, "-layout", "-enc", "UTF-8", tmp.Name(), "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
