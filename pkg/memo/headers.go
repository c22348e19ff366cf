package memo

import (
	"bufio"
	"os"
	"strings"
)

// DefaultHeadings is the memo template's top-level section list, used when no
// headings file is configured.
var DefaultHeadings = []string{
	"Executive Summary",
	"II. Investment Rationale",
	"III. About the Target",
	"IV. Growth Opportunity",
	"V. Key Financial Model Assumptions",
	"VI. Preliminary Integration Plan",
	"VII. Legal and Contractual Analysis",
	"VIII. Preliminary Risk Analysis and Due Diligence Plan",
	"Appendices",
}

// LoadHeaders reads one title per line, skipping blanks.
func LoadHeaders(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var headers []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			headers = append(headers, line)
		}
	}
	return headers, scanner.Err()
}
