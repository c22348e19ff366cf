package converter

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Format is a supported export target.
type Format string

const (
	FormatDocx      Format = "docx"
	FormatPDF       Format = "pdf"
	FormatPlaintext Format = "plaintext"
)

// PandocConverter shells out to pandoc for docx and pdf output. Plaintext
// never touches the converter: the bytes are the text, exactly.
type PandocConverter struct {
	binary    string
	pdfEngine string
	margin    string
}

func NewPandocConverter(binary, pdfEngine, margin string) *PandocConverter {
	if binary == "" {
		binary = "pandoc"
	}
	if pdfEngine == "" {
		pdfEngine = "pdflatex"
	}
	if margin == "" {
		margin = "1.5cm"
	}
	return &PandocConverter{binary: binary, pdfEngine: pdfEngine, margin: margin}
}

// Export writes text to the staging directory and converts it to the target
// format, returning the output path. Each format fails independently.
func (c *PandocConverter) Export(text string, format Format, dir, baseName string) (string, error) {
	switch format {
	case FormatPlaintext:
		outPath := filepath.Join(dir, baseName+".txt")
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return "", fmt.Errorf("failed to write plaintext: %w", err)
		}
		return outPath, nil

	case FormatDocx:
		srcPath, err := c.stageMarkdown(text, dir, baseName)
		if err != nil {
			return "", err
		}
		outPath := filepath.Join(dir, baseName+".docx")
		if err := c.run(srcPath, outPath); err != nil {
			return "", err
		}
		return outPath, nil

	case FormatPDF:
		// PDF goes through docx first, matching the delivered formatting.
		docxPath, err := c.Export(text, FormatDocx, dir, baseName)
		if err != nil {
			return "", err
		}
		return c.DocxToPDF(docxPath, dir, baseName)

	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// DocxToPDF converts an existing docx artifact to pdf with the configured
// engine and page margin.
func (c *PandocConverter) DocxToPDF(docxPath, dir, baseName string) (string, error) {
	outPath := filepath.Join(dir, baseName+".pdf")
	args := []string{
		docxPath,
		"-o", outPath,
		"-V", "geometry:margin=" + c.margin,
		"--pdf-engine=" + c.pdfEngine,
	}
	cmd := exec.Command(c.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pandoc pdf conversion failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return outPath, nil
}

func (c *PandocConverter) stageMarkdown(text, dir, baseName string) (string, error) {
	srcPath := filepath.Join(dir, baseName+".md")
	if err := os.WriteFile(srcPath, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to stage markdown: %w", err)
	}
	return srcPath, nil
}

func (c *PandocConverter) run(srcPath, outPath string) error {
	cmd := exec.Command(c.binary, srcPath, "-o", outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pandoc conversion failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
