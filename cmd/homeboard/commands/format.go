package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintHeader prints a titled block header
func PrintHeader(title string, lines ...string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	if len(lines) > 0 {
		PrintSeparator()
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
		}
	}
	PrintSeparator()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2
		}
	}
	fmt.Println(strings.Repeat("─", total))
}

// PrintTableRow prints a table row; widths count display columns (한글 = 2)
func PrintTableRow(values []string, widths []int) {
	var b strings.Builder
	for i, val := range values {
		b.WriteString(val)
		if i < len(values)-1 {
			b.WriteString(strings.Repeat(" ", max(widths[i]-displayWidth(val), 0)+2))
		}
	}
	fmt.Println(b.String())
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %s%s : %s\n", key, strings.Repeat(" ", max(keyWidth-displayWidth(key), 0)), value)
}

// PrintJSON writes v as indented JSON to stdout
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// displayWidth approximates terminal width: non-ASCII runes take two cells
func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r < utf8.RuneSelf {
			width++
		} else {
			width += 2
		}
	}
	return width
}
